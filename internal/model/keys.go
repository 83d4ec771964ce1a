// internal/model/keys.go
package model

import (
	"strconv"
	"strings"

	appErrors "github.com/unclebandit/gapgrabber-web/internal/errors"
)

// Routing key prefixes. Keys appear in URLs only; backend calls always use
// the numeric id carried next to the key.
const (
	SlotPrefix      = "slot"
	WorkflowPrefix  = "workflow"
	CandidatePrefix = "cand"
)

func FormatKey(prefix string, id int) string {
	return prefix + "-" + strconv.Itoa(id)
}

// ParseKey recovers the numeric id from a routing key. Anything other than
// "{prefix}-{positive integer}" is a NotFoundError.
func ParseKey(prefix, key string) (int, error) {
	rest, ok := strings.CutPrefix(key, prefix+"-")
	if !ok || rest == "" {
		return 0, appErrors.NewNotFound(prefix, key)
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id <= 0 || strconv.Itoa(id) != rest {
		return 0, appErrors.NewNotFound(prefix, key)
	}
	return id, nil
}
