package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeExt(t *testing.T) {
	assert.Equal(t, "pdf", NormalizeExt("invoice.PDF"))
	assert.Equal(t, "jpeg", NormalizeExt("scan.jpeg"))
	assert.Equal(t, "png", NormalizeExt(".png"))
	assert.Equal(t, "", NormalizeExt("no-extension"))
}

func TestIsAllowedExt(t *testing.T) {
	assert.True(t, IsAllowedExt("invoice.pdf"))
	assert.True(t, IsAllowedExt("scan.TIFF"))
	assert.False(t, IsAllowedExt("notes.docx"))
	assert.False(t, IsAllowedExt("archive"))
}

func TestCanonicalize(t *testing.T) {
	cat, ok := Canonicalize("saas")
	assert.True(t, ok)
	assert.Equal(t, SoftwareServices, cat)

	cat, ok = Canonicalize("Travel")
	assert.True(t, ok)
	assert.Equal(t, Travel, cat)

	cat, ok = Canonicalize("unknown thing")
	assert.False(t, ok)
	assert.Equal(t, Other, cat)
}

func TestIsFailure(t *testing.T) {
	assert.True(t, StatusParsingFailed.IsFailure())
	assert.True(t, StatusTextractFailed.IsFailure())
	assert.False(t, StatusProcessed.IsFailure())
	assert.False(t, StatusProcessing.IsFailure())
}
