// Package blob holds the picture content stores. Implementations live in
// the fs and gcs subpackages.
package blob

import (
	"fmt"
	"strings"

	"github.com/rezkam/catalog/internal/domain"
)

// CheckKey rejects keys that could escape the store's namespace.
func CheckKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: content key %q", domain.ErrInvalidID, key)
	}
	return nil
}
