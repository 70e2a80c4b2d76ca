// Package cli is the terminal front end of the users console.
//
// App wires configuration, logging, the REST client, the optional action
// journal and the page controller, then serves a read–eval–print loop:
//
//	users (online)>
//	list | refresh | search | status | page | next | prev | size | sort
//	new | edit <id> | toggle <id> | delete <id> | history | exit
//
// Notifications are printed as "[severity] message" lines; destructive
// actions ask for a [y/N] confirmation first. Password prompts read without
// echo when stdin is a terminal; typing :show at such a prompt toggles
// masking for that field.
//
// A background watcher pings the API every OnlineCheckInterval and the prompt
// shows whether the last probe succeeded.
package cli
