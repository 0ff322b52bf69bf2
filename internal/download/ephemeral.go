package download

import (
	"fmt"
	"os"
)

// ephemeral is the short-lived staging file behind a save.
type ephemeral struct {
	f         *os.File
	committed bool
}

func acquire(dir, name string) (*ephemeral, error) {
	f, err := os.CreateTemp(dir, "."+name+".*.part")
	if err != nil {
		return nil, fmt.Errorf("creating staging file: %w", err)
	}
	return &ephemeral{f: f}, nil
}

// commit writes data and moves the staging file to dest.
func (e *ephemeral) commit(data []byte, dest string) error {
	if _, err := e.f.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := e.f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dest, err)
	}
	if err := os.Chmod(e.f.Name(), 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", dest, err)
	}
	if err := os.Rename(e.f.Name(), dest); err != nil {
		return fmt.Errorf("moving archive to %s: %w", dest, err)
	}
	e.committed = true
	return nil
}

// release closes and removes the staging file unless it was committed.
func (e *ephemeral) release() {
	_ = e.f.Close() // already closed after commit
	if !e.committed {
		_ = os.Remove(e.f.Name())
	}
}
