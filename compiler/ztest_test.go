package compiler_test

import (
	"testing"

	"github.com/brimdata/serql/ztest"
)

func TestCompilerZTests(t *testing.T) {
	ztest.Run(t, "ztests")
}
