package console_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/larivierec/cloudflare-ddns-sync/pkg/console"
	"gotest.tools/v3/assert"
)

func TestLogger_Streams(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := console.New(&out, &errOut)

	logger.Infof("Zone ID: %s", "Z1")
	logger.OKf("DNS updated: %s", "1.2.3.4")
	logger.Errorf("Could not determine public IP")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, 2, len(lines))
	assert.Assert(t, strings.HasSuffix(lines[0], "[INFO] Zone ID: Z1"), lines[0])
	assert.Assert(t, strings.HasSuffix(lines[1], "[OK] DNS updated: 1.2.3.4"), lines[1])
	assert.Assert(t, strings.HasSuffix(strings.TrimSpace(errOut.String()), "[ERR] Could not determine public IP"))
}
