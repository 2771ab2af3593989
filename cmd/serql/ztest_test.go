package main

import (
	"testing"

	"github.com/brimdata/serql/ztest"
)

func TestSerql(t *testing.T) {
	ztest.Run(t, "ztests")
}
