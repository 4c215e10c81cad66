package helper

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ResolveEnv replaces values of the form "ENV:NAME" with the content of the
// environment variable NAME.
func ResolveEnv(in string) string {
	if strings.HasPrefix(in, "ENV:") {
		return os.Getenv(in[4:])
	}
	return in
}

func SetDefaultStringIfEmpty(value, defaultValue, field, kind string) string {
	if len(value) == 0 {
		log.WithFields(log.Fields{"kind": kind, "field": field}).Debugf("no value specified, assuming default %q", defaultValue)
		return defaultValue
	}
	return value
}

// JoinURL appends path to base, making sure exactly one slash separates them.
func JoinURL(base, path string) string {
	base = strings.TrimRight(base, "/")
	if path == "" || path == "/" {
		return base + "/"
	}
	return base + "/" + strings.TrimLeft(path, "/")
}
