package oneliner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skawahara/memoflow/pkg/memoflow/provider"
)

func summarizeText(t *testing.T, p provider.Provider, text string) (string, *string) {
	t.Helper()
	a, err := New(p)
	require.NoError(t, err)

	out := a.Invoke(context.Background(), State{Text: text})
	if out.Err != nil {
		return "", &out.Err.Message
	}
	return out.Output.String("line"), nil
}

func TestSummarizesToOneLine(t *testing.T) {
	p := provider.NewCanned(provider.Text("dentist Tuesday, bring referral"))

	line, errMsg := summarizeText(t, p, "Call the dentist about Tuesday and remember the referral letter.")
	require.Nil(t, errMsg)
	assert.Equal(t, "dentist Tuesday, bring referral", line)
}

func TestMultilineResponseIsTruncated(t *testing.T) {
	p := provider.NewCanned(provider.Text("first line\nsecond line"))

	line, errMsg := summarizeText(t, p, "a long memo")
	require.Nil(t, errMsg)
	assert.Equal(t, "first line", line)
}

func TestWhitespaceOnlyResponseIsError(t *testing.T) {
	p := provider.NewCanned(provider.Text("   \n  "))

	_, errMsg := summarizeText(t, p, "a memo")
	require.NotNil(t, errMsg)
	assert.Contains(t, *errMsg, "empty summary")
}

func TestEmptyTextIsFieldError(t *testing.T) {
	p := provider.NewCanned()
	a, err := New(p)
	require.NoError(t, err)

	out := a.Invoke(context.Background(), State{})
	require.NotNil(t, out.Err)
	assert.Equal(t, "text", out.Err.Field)
	assert.Equal(t, 0, p.CallCount())
}
