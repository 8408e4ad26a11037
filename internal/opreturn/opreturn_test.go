package opreturn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitFor(t *testing.T) {
	assert.Equal(t, 160, LimitFor(Public))
	assert.Equal(t, 94, LimitFor(Encrypted))
	assert.Equal(t, 190, LimitFor(AirdropPublic))
}

func TestPrepare(t *testing.T) {
	assert.Equal(t, "hello", Prepare("hello", Public))
	assert.Equal(t, "", Prepare("", Encrypted))

	long := strings.Repeat("a", 200)
	assert.Len(t, Prepare(long, Public), 160)
	assert.Len(t, Prepare(long, Encrypted), 94)
	assert.Len(t, Prepare(long, AirdropPublic), 190)

	exact := strings.Repeat("b", 94)
	assert.Equal(t, exact, Prepare(exact, Encrypted))
}

// Limits count characters, not bytes.
func TestPrepareMultibyte(t *testing.T) {
	msg := strings.Repeat("é", 100)
	got := Prepare(msg, Encrypted)
	assert.Equal(t, 94, len([]rune(got)))
	assert.Equal(t, strings.Repeat("é", 94), got)
}
