package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Get_Defaults(t *testing.T) {
	t.Parallel()

	info := Get()
	assert.Equal(t, "dev", info.String())
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.True(t, strings.HasPrefix(info.Full(), "dev (unknown) built unknown "))
	assert.True(t, strings.HasSuffix(info.Full(), runtime.GOOS+"/"+runtime.GOARCH))
}
