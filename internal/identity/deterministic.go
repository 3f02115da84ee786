package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by entity type so keys of different entities
// never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ProblemUUID derives the ID of a problem from its url_name.
func ProblemUUID(urlName string) uuid.UUID {
	urlName = strings.ToLower(strings.TrimSpace(urlName))
	if urlName == "" {
		return uuid.Nil
	}
	return UUID("go-capa:problem:" + urlName)
}
