package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetector_EmptyInputDefaultsToEnglish(t *testing.T) {
	d := NewDetector()

	assert.Equal(t, "en", d.Detect(""))
	assert.Equal(t, "en", d.Detect("   \t\n"))
}

func TestDetector_English(t *testing.T) {
	d := NewDetector()

	assert.Equal(t, "en", d.Detect("I have fever and cold"))
}

func TestDetector_Hindi(t *testing.T) {
	d := NewDetector()

	assert.Equal(t, "hi", d.Detect("मुझे कल से बुखार है और सिर में दर्द है"))
}
