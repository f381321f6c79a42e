package video

import (
	"strconv"
	"strings"
	"time"
)

// ObjectKey builds {userID}/{epochMillis}.{ext}. The extension is whatever
// follows the last dot of the original name, possibly empty.
func ObjectKey(userID string, at time.Time, fileName string) string {
	return userID + "/" + strconv.FormatInt(at.UnixMilli(), 10) + "." + fileExt(fileName)
}

func fileExt(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return name[i+1:]
}
