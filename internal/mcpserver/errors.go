package mcpserver

import "errors"

var errNoQuery = errors.New("mcpserver: query is required")
