package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

func TestOfferingCreate(t *testing.T) {
	s, _ := newTestState(t)
	group, err := s.CourseTypes.Create("Group")
	require.NoError(t, err)
	english, err := s.Courses.Create("English")
	require.NoError(t, err)

	o, err := s.Offerings.Create(group.ID, english.ID)
	require.NoError(t, err)
	assert.Equal(t, types.CourseOffering{
		ID:             "id-3",
		Name:           "Group - English",
		CourseTypeID:   group.ID,
		CourseID:       english.ID,
		CourseTypeName: "Group",
		CourseName:     "English",
	}, o)

	tests := []struct {
		name         string
		courseTypeID string
		courseID     string
		wantMsg      string
	}{
		{"missing course type", "", english.ID, "Please select both course type and course"},
		{"missing course", group.ID, "  ", "Please select both course type and course"},
		{"unknown course type", "nope", english.ID, "Selected course type does not exist"},
		{"unknown course", group.ID, "nope", "Selected course does not exist"},
		{"duplicate pairing", group.ID, english.ID, "This course offering already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Offerings.Create(tt.courseTypeID, tt.courseID)
			require.Error(t, err)
			assert.True(t, types.IsValidation(err))
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Len(t, s.Offerings.List(), 1)
		})
	}
}

func TestOfferingSnapshotIsNotRefreshedByParentRename(t *testing.T) {
	s, _ := newTestState(t)
	o := seedOffering(t, s, "Group", "English")

	_, err := s.CourseTypes.Update(o.CourseTypeID, "Small Group")
	require.NoError(t, err)
	_, err = s.Courses.Update(o.CourseID, "English Literature")
	require.NoError(t, err)

	got, err := s.Offerings.Get(o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Group - English", got.Name)
	assert.Equal(t, "Group", got.CourseTypeName)
	assert.Equal(t, "English", got.CourseName)

	// Re-saving the offering refreshes the snapshot.
	got, err = s.Offerings.Update(o.ID, o.CourseTypeID, o.CourseID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
	assert.Equal(t, "Small Group - English Literature", got.Name)
	assert.Equal(t, "Small Group", got.CourseTypeName)
	assert.Equal(t, "English Literature", got.CourseName)
}

func TestOfferingUpdate(t *testing.T) {
	s, _ := newTestState(t)
	first := seedOffering(t, s, "Group", "English")
	second := seedOffering(t, s, "Individual", "Hindi")

	t.Run("re-saving the same pairing is not a duplicate", func(t *testing.T) {
		_, err := s.Offerings.Update(first.ID, first.CourseTypeID, first.CourseID)
		assert.NoError(t, err)
	})

	t.Run("moving onto another offering's pairing is rejected", func(t *testing.T) {
		_, err := s.Offerings.Update(first.ID, second.CourseTypeID, second.CourseID)
		require.Error(t, err)
		assert.Equal(t, "This course offering already exists", err.Error())
		got, _ := s.Offerings.Get(first.ID)
		assert.Equal(t, "Group - English", got.Name)
	})

	t.Run("re-pointing derives a new name", func(t *testing.T) {
		got, err := s.Offerings.Update(first.ID, second.CourseTypeID, first.CourseID)
		require.NoError(t, err)
		assert.Equal(t, "Individual - English", got.Name)
	})

	t.Run("unknown ID", func(t *testing.T) {
		_, err := s.Offerings.Update("nope", first.CourseTypeID, first.CourseID)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestOfferingDelete(t *testing.T) {
	s, _ := newTestState(t)
	o := seedOffering(t, s, "Group", "English")
	r, err := s.Registrations.Create(RegistrationInput{
		StudentName: "Alice", CourseOfferingID: o.ID, Email: "alice@example.com",
	})
	require.NoError(t, err)

	var prompt string
	deleted, err := s.Offerings.Delete(o.ID, func(p string) bool { prompt = p; return false })
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, "Are you sure you want to delete this course offering?", prompt)

	deleted, err = s.Offerings.Delete(o.ID, AlwaysConfirm)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, s.Offerings.List())

	// Registrations survive with their cached offering name.
	got, err := s.Registrations.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Group - English", got.CourseOfferingName)
}

func TestOfferingEditSession(t *testing.T) {
	s, _ := newTestState(t)
	o := seedOffering(t, s, "Group", "English")
	hindi, err := s.Courses.Create("Hindi")
	require.NoError(t, err)

	_, err = s.Offerings.CommitEdit(o.CourseTypeID, hindi.ID)
	assert.ErrorIs(t, err, types.ErrNotEditing)

	require.NoError(t, s.Offerings.BeginEdit(o.ID))
	_, err = s.Offerings.CommitEdit("", hindi.ID)
	require.Error(t, err)
	_, editing := s.Offerings.Session().Editing()
	assert.True(t, editing)

	got, err := s.Offerings.CommitEdit(o.CourseTypeID, hindi.ID)
	require.NoError(t, err)
	assert.Equal(t, "Group - Hindi", got.Name)
	_, editing = s.Offerings.Session().Editing()
	assert.False(t, editing)
}

func TestOfferingFilters(t *testing.T) {
	s, _ := newTestState(t)
	groupEnglish := seedOffering(t, s, "Group", "English")
	soloHindi := seedOffering(t, s, "Individual", "Hindi")
	groupHindi := seedOffering(t, s, "Group", "Hindi")

	assert.Equal(t, []string{"Group", "Individual"}, s.Offerings.CourseTypeNames())
	assert.Equal(t, []types.CourseOffering{groupEnglish, groupHindi}, s.Offerings.FilterByCourseType("Group"))
	assert.Equal(t, []types.CourseOffering{soloHindi}, s.Offerings.FilterByCourseType("Individual"))
	assert.Len(t, s.Offerings.FilterByCourseType(""), 3)
	assert.Empty(t, s.Offerings.FilterByCourseType("group"))

	// Filters read the cached name, so a rename does not move offerings.
	_, err := s.CourseTypes.Update(groupEnglish.CourseTypeID, "Class")
	require.NoError(t, err)
	assert.Len(t, s.Offerings.FilterByCourseType("Group"), 2)
	assert.Empty(t, s.Offerings.FilterByCourseType("Class"))
}
