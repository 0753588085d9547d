package cmd

import (
	"context"
	"sync"
)

type syncUploads struct {
	mu    sync.Mutex
	calls map[string]string
	err   error
}

func (u *syncUploads) UploadFile(ctx context.Context, blobPath, localPath string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls[blobPath] = localPath
	return "blob://" + blobPath, nil
}

type sasLinks struct {
	err error
}

func (s sasLinks) GenerateSasURL(ctx context.Context, blobPath string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "https://share/" + blobPath + "?sig=r", nil
}
