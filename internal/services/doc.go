// Package services implements the Exam Oracle application services:
// identity (signup, login, session, friends) and scoring (quiz attempts,
// rankings, performance summaries). Services work on the local record
// store through the repositories packages and never hold a global
// "current user": the caller passes the Session explicitly.
package services
