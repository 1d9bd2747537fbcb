package valkeyx

import (
	"fmt"
	"strings"
)

// BuildKey 는 prefix와 id를 결합하여 키를 생성한다.
// 형식: {prefix}:{id}
func BuildKey(prefix, id string) string {
	return fmt.Sprintf("%s:%s", prefix, strings.TrimSpace(id))
}
