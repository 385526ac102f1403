// Package cli is the interactive terminal front end of Exam Oracle.
//
// A read–eval–print loop dispatches commands to App methods: account
// commands (signup, login, logout), source commands (upload, paste,
// sources, remove, new), study commands (guide, show, done, explain,
// chat), quiz commands (quiz, share, join, rankings, history) and social
// commands (friends, users, addfriend). Rendering is the only logic that
// lives here; everything else is delegated to the services, the gateway
// and the workspace.
package cli
