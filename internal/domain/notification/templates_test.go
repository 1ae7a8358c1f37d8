package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplatesCoverEveryType(t *testing.T) {
	tpls := DefaultTemplates()
	for _, typ := range []Type{TypeComment, TypeSupport, TypeStatusChange, TypeNewRequirement, TypeMilestone, TypeProjectUpdate} {
		_, ok := tpls[typ]
		assert.True(t, ok, "missing template for %s", typ)
	}
}

func TestRender(t *testing.T) {
	tpls := DefaultTemplates()

	title, msg, err := tpls.Render(TypeSupport, map[string]string{"user": "Budi", "entity": "Jalan rusak"})
	require.NoError(t, err)
	assert.Equal(t, "Dukungan baru", title)
	assert.Equal(t, `Budi mendukung kebutuhan "Jalan rusak"`, msg)

	title, msg, err = tpls.Render(TypeMilestone, map[string]string{"entity": "Jalan rusak", "milestone": "10 dukungan"})
	require.NoError(t, err)
	assert.Equal(t, "Milestone tercapai", title)
	assert.Equal(t, "Jalan rusak telah mencapai 10 dukungan", msg)

	_, _, err = tpls.Render(Type("broadcast"), nil)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestLoadTemplatesRejectsUnknownKeys(t *testing.T) {
	_, err := LoadTemplates([]byte("newsletter:\n  title: x\n"))
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = LoadTemplates([]byte("comment: [oops"))
	assert.Error(t, err)
}
