package system

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

// DocumentExtensions are the file name extensions treated as documents.
var DocumentExtensions = []string{".sif", ".xml"}

// InitResourceLimits raises the open file limit for batch loads.
func InitResourceLimits(want uint64) {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}
	if rLimit.Cur >= want {
		return
	}

	rLimit.Cur = want
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	} else {
		fmt.Printf("[*] Системный лимит открытых файлов увеличен до %d\n", rLimit.Cur)
	}
}

// IsDocument reports whether name has a document extension.
func IsDocument(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range DocumentExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FindLatestDocument returns the most recently modified document in dir.
func FindLatestDocument(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !IsDocument(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено документов (%s)", dir, strings.Join(DocumentExtensions, ", "))
	}

	return latestFile, nil
}
