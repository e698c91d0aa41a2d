package main

import (
	"fmt"
	"strconv"
	"strings"
)

// commandArgs lists the positional arguments of each command. A trailing
// "..." marks an argument that takes the rest of the line.
var commandArgs = map[string][]string{
	"PING":     {},
	"KEYS":     {},
	"ECHO":     {"message..."},
	"TYPE":     {"key"},
	"DEL":      {"key"},
	"LEN":      {"key"},
	"CAP":      {"key"},
	"RANGE":    {"key"},
	"SHRINK":   {"key"},
	"CLEAR":    {"key"},
	"EXPIRE":   {"key", "exp"},
	"EXPIREAT": {"key", "at"},
	"PUSH":     {"key", "value..."},
	"POP":      {"key"},
	"PEEK":     {"key"},
	"GET":      {"key", "index"},
	"SET":      {"key", "index", "value..."},
	"INSERT":   {"key", "index", "value..."},
	"REMOVEAT": {"key", "index"},
	"ENQUEUE":  {"key", "value..."},
	"DEQUEUE":  {"key"},
	"FRONT":    {"key"},
	"LPUSH":    {"key", "value..."},
	"RPUSH":    {"key", "value..."},
	"LPOP":     {"key"},
	"RPOP":     {"key"},
	"LINSERT":  {"key", "index", "where", "value..."},
	"LREM":     {"key", "index"},
}

func usage(command string) string {
	return strings.TrimSpace(command + " " + strings.Join(commandArgs[command], " "))
}

// argParser parses and validates the command and its arguments
func argParser(parts []string) (map[string]interface{}, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("no command entered")
	}

	command := strings.ToUpper(parts[0])
	args, ok := commandArgs[command]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", command)
	}

	request := map[string]interface{}{"command": command}
	rest := parts[1:]
	for _, name := range args {
		if len(rest) == 0 {
			return nil, fmt.Errorf("usage: %s", usage(command))
		}
		if field, ok := strings.CutSuffix(name, "..."); ok {
			request[field] = strings.Join(rest, " ")
			rest = nil
			continue
		}

		arg := rest[0]
		rest = rest[1:]
		switch name {
		case "index", "exp", "at":
			n, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s must be an integer, got %q", name, arg)
			}
			request[name] = n
		case "where":
			where := strings.ToUpper(arg)
			if where != "BEFORE" && where != "AFTER" {
				return nil, fmt.Errorf("where must be BEFORE or AFTER, got %q", arg)
			}
			request[name] = where
		default:
			request[name] = arg
		}
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("usage: %s", usage(command))
	}
	return request, nil
}
