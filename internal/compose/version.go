package compose

import (
	"fmt"
	"math/big"
	"strings"

	"blockmeta/internal/metadata"
)

// BumpVersion increments the patch component of a "major.minor.patch" version.
// Components are unbounded integers. Anything else, including non-string values,
// resets to metadata.InitialVersion.
func BumpVersion(prior any) (string, error) {
	s, ok := prior.(string)
	if !ok {
		return metadata.InitialVersion, fmt.Errorf("version %v is a %T, not a string", prior, prior)
	}
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return metadata.InitialVersion, fmt.Errorf("version %q does not have three components", s)
	}
	nums := make([]*big.Int, 3)
	for i, p := range parts {
		n, ok := new(big.Int).SetString(strings.TrimSpace(p), 10)
		if !ok {
			return metadata.InitialVersion, fmt.Errorf("version %q: component %q is not an integer", s, p)
		}
		nums[i] = n
	}
	nums[2].Add(nums[2], big.NewInt(1))
	return nums[0].String() + "." + nums[1].String() + "." + nums[2].String(), nil
}
