package core

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyUnassigned is the folder key for cases that declare neither a
// folder id nor a folder name.
const KeyUnassigned = "unassigned"

// FolderKey computes the grouping key for a case's declared folder
// identity. The function is total: every (id, name) pair maps to
// exactly one key.
//
//	FolderKey(nil, "")       = "unassigned"
//	FolderKey(nil, "Login")  = "Login|None"
//	FolderKey(&7, "Login")   = "Login|7"
func FolderKey(folderID *int, folderName string) string {
	switch {
	case folderID == nil && folderName == "":
		return KeyUnassigned
	case folderID == nil:
		return folderName + "|None"
	default:
		return fmt.Sprintf("%s|%d", folderName, *folderID)
	}
}

// ParseFolderKey inverts FolderKey, unpacking a grouping key back into
// the declared folder name and id. The id is nil for name-only keys and
// for KeyUnassigned. Folder names may themselves contain '|', so the
// split happens at the last separator.
func ParseFolderKey(key string) (name string, id *int) {
	if key == KeyUnassigned {
		return "", nil
	}
	i := strings.LastIndex(key, "|")
	if i < 0 {
		return key, nil
	}
	name = key[:i]
	if key[i+1:] == "None" {
		return name, nil
	}
	n, err := strconv.Atoi(key[i+1:])
	if err != nil {
		return name, nil
	}
	return name, &n
}
