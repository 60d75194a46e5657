package utils

import (
	"os"
)

// Exists reports whether path exists and whether it is a directory. A
// missing path is not an error.
func Exists(path string) (isDir bool, exists bool, err error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return info.IsDir(), true, nil
}
