package loaders

import (
	"os"
	"testing"

	"github.com/grailbio/base/grail"
)

func TestMain(m *testing.M) {
	shutdown := grail.Init()
	defer shutdown()
	os.Exit(m.Run())
}
