package gdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rkedia/drivepull/internal/domain"
)

func TestVerify_MissingBinary(t *testing.T) {
	tr := New("drivepull-definitely-not-installed", time.Second)

	err := tr.Verify(context.Background())
	if err == nil {
		t.Fatal("Verify() = nil, want error for missing binary")
	}
	if !errors.Is(err, domain.ErrTransportMissing) {
		t.Errorf("Verify() error = %v, want ErrTransportMissing", err)
	}
}

func TestFetch_MissingBinaryIsProcessFault(t *testing.T) {
	tr := New("drivepull-definitely-not-installed", time.Second)

	res, err := tr.Fetch(context.Background(), "ABC123", t.TempDir()+"/out.jpg")
	if err == nil {
		t.Fatalf("Fetch() error = nil, res = %+v; want process fault", res)
	}
}

func TestNew_Defaults(t *testing.T) {
	tr := New("", 0)
	if tr.binPath != "gdown" {
		t.Errorf("binPath = %q, want gdown", tr.binPath)
	}
	if tr.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", tr.timeout, DefaultTimeout)
	}
}
