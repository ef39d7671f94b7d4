package utils

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// FmtKeyCode renders a key code the way binding documents store it.
func FmtKeyCode(code int) string {
	return strconv.Itoa(code)
}

func ParseKeyCode(code string) (int, error) {
	if len(code) < 1 {
		return 0, errors.New("invalid key code string")
	}
	v, err := strconv.ParseInt(strings.TrimSpace(code), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid key code %q: %w", code, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid key code %q: negative", code)
	}
	return int(v), nil
}

func FmtKeyList(codes []int) string {
	var _list string
	for _, c := range codes {
		if len(_list) > 0 {
			_list += ","
		}
		_list += FmtKeyCode(c)
	}
	return _list
}

func ForceDebugEntry(entry *logrus.Entry, force bool, data interface{}) {
	var level logrus.Level = logrus.DebugLevel
	if force {
		level = logrus.InfoLevel
	}
	entry.Log(level, data)
}

func EncodeToHexEllipsis(data []byte, maxlen int) string {
	str := hex.EncodeToString(data[0:min(len(data), maxlen)])
	if len(data) > maxlen {
		str += "..."
	}
	return str
}

// BackupFile moves filename into backupdir with a timestamp suffix and returns
// the new path. A missing source is not an error.
func BackupFile(filename string, backupdir string) (string, error) {
	if _, err := os.Stat(backupdir); err != nil {
		if err := os.MkdirAll(backupdir, 0755); err != nil {
			return "", err
		}
	}
	ext := filepath.Ext(filename)
	filenamenoext := strings.TrimSuffix(filepath.Base(filename), ext)
	backupfile := filepath.Join(backupdir, filenamenoext+"_"+time.Now().Format("20060102150405")+ext+".bak")
	if _, err := os.Stat(filename); err != nil {
		return "", nil
	}
	if err := os.Rename(filename, backupfile); err != nil {
		return "", err
	}
	return backupfile, nil
}
