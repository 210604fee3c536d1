package registry

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/enginehost/internal/engine"
)

type stubRuntime struct {
	engine.Runtime
}

func (stubRuntime) Name() string        { return "stub" }
func (stubRuntime) Description() string { return "test backend" }

func init() {
	Register("stub", func() engine.Runtime { return stubRuntime{} })
}

func TestCreate(t *testing.T) {
	rt, err := Create("stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if rt.Name() != "stub" {
		t.Errorf("Name() = %q, expected stub", rt.Name())
	}

	if _, err := Create("missing"); err == nil || !strings.Contains(err.Error(), "missing") {
		t.Errorf("Create(missing) error = %v", err)
	}
}

func TestList(t *testing.T) {
	var found bool
	for _, info := range List() {
		if info.Name == "stub" {
			found = true
			if info.Description != "test backend" {
				t.Errorf("Description = %q", info.Description)
			}
		}
	}
	if !found {
		t.Error("List() should include registered backends")
	}
	if !Exists("stub") || Exists("missing") {
		t.Error("Exists() mismatch")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate name should panic")
		}
	}()
	Register("stub", func() engine.Runtime { return stubRuntime{} })
}

type loggedRuntime struct {
	stubRuntime
	got *log.Logger
}

func (r *loggedRuntime) SetLogger(l *log.Logger) { r.got = l }

func TestCreateWithLogger(t *testing.T) {
	rt := &loggedRuntime{}
	Register("logged", func() engine.Runtime { return rt })

	logger := log.New(io.Discard)
	created, err := CreateWithLogger("logged", logger)
	if err != nil {
		t.Fatalf("CreateWithLogger() failed: %v", err)
	}
	if created.(*loggedRuntime).got != logger {
		t.Error("logger was not handed to the runtime")
	}

	// Runtimes without SetLogger are returned unchanged
	if _, err := CreateWithLogger("stub", logger); err != nil {
		t.Errorf("CreateWithLogger(stub) failed: %v", err)
	}
	if _, err := CreateWithLogger("missing", logger); err == nil {
		t.Error("CreateWithLogger(missing) should fail")
	}
}
