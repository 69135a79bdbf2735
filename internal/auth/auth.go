package auth

import (
	"strings"

	"github.com/frahmantamala/marketplace-storefront/internal/user"
)

const bcryptPrefix = "$2"

// IsHashed reports whether a stored password is a bcrypt hash rather than plaintext.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, bcryptPrefix) && len(stored) == 60
}

// Candidate picks the user a credential refers to. Email matches win over
// display-name matches; two users sharing a display name make the
// credential ambiguous and nothing is returned.
func Candidate(users []user.User, credential string) (user.User, bool) {
	var nameMatches []int
	for i := range users {
		byEmail, byName := users[i].MatchesCredential(credential)
		if byEmail {
			return users[i], true
		}
		if byName {
			nameMatches = append(nameMatches, i)
		}
	}
	if len(nameMatches) == 1 {
		return users[nameMatches[0]], true
	}
	return user.User{}, false
}
