package registry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/registrar/internal/memstore"
	"github.com/mesh-intelligence/registrar/pkg/store"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// populate builds the Group/English scenario with one registration.
func populate(t *testing.T, s *State) {
	t.Helper()
	o := seedOffering(t, s, "Group", "English")
	_, err := s.Registrations.Create(RegistrationInput{
		StudentName: "Alice", CourseOfferingID: o.ID, Email: "alice@example.com", Phone: "555-0100",
	})
	require.NoError(t, err)
}

func TestStateRoundTrip(t *testing.T) {
	for _, backend := range []string{types.BackendSQLite, types.BackendFile} {
		t.Run(backend, func(t *testing.T) {
			cfg := types.Config{Backend: backend, DataDir: t.TempDir()}

			kv, err := store.Open(cfg)
			require.NoError(t, err)
			s := openTestState(kv)
			populate(t, s)
			want := s.Summary(DashboardLimit)
			require.NoError(t, kv.Detach())

			kv, err = store.Open(cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = kv.Detach() })
			reloaded := Open(kv)

			// Compare encodings; time.Time carries a location pointer.
			assert.JSONEq(t, encoded(t, want), encoded(t, reloaded.Summary(DashboardLimit)))
			assert.Empty(t, reloaded.Check())
		})
	}
}

func TestStateSharesOneKVStore(t *testing.T) {
	s, kv := newTestState(t)
	populate(t, s)

	reloaded := Open(kv)
	assert.Equal(t, s.CourseTypes.List(), reloaded.CourseTypes.List())
	assert.Equal(t, s.Courses.List(), reloaded.Courses.List())
	assert.Equal(t, s.Offerings.List(), reloaded.Offerings.List())
	assert.JSONEq(t, encoded(t, s.Registrations.List()), encoded(t, reloaded.Registrations.List()))
}

func TestRegistrationDateEncoding(t *testing.T) {
	s, kv := newTestState(t)
	populate(t, s)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal([]byte(storedJSON(t, kv, types.KeyStudentRegistrations)), &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "2025-09-01T08:15:30.123Z", raw[0]["registrationDate"])
	assert.Equal(t, "Group - English", raw[0]["courseOfferingName"])
}

func TestOpenToleratesBadStoredValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"corrupt JSON", `{not json`},
		{"wrong shape", `{"id":"x"}`},
		{"null", `null`},
		{"empty string", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := memstore.New()
			t.Cleanup(func() { _ = kv.Detach() })
			for _, key := range types.StorageKeys {
				require.NoError(t, kv.Set(key, []byte(tt.value)))
			}

			s := Open(kv)
			assert.NotNil(t, s.CourseTypes.List())
			assert.Empty(t, s.CourseTypes.List())
			assert.Empty(t, s.Courses.List())
			assert.Empty(t, s.Offerings.List())
			assert.Empty(t, s.Registrations.List())

			// The store stays usable and the next write replaces the bad value.
			_, err := s.Courses.Create("English")
			require.NoError(t, err)
			got, err := kv.Get(types.KeyCourses)
			require.NoError(t, err)
			assert.Contains(t, string(got), `"English"`)
		})
	}
}

func TestOpenLoadsOneCorruptCollection(t *testing.T) {
	kv := memstore.New()
	t.Cleanup(func() { _ = kv.Detach() })
	require.NoError(t, kv.Set(types.KeyCourseTypes, []byte(`[{"id":"1","name":"Group"}]`)))
	require.NoError(t, kv.Set(types.KeyCourses, []byte(`[{`)))

	s := Open(kv)
	assert.Equal(t, []types.CourseType{{ID: "1", Name: "Group"}}, s.CourseTypes.List())
	assert.Empty(t, s.Courses.List())
}

func TestOpenSkipsMalformedRecords(t *testing.T) {
	kv := memstore.New()
	t.Cleanup(func() { _ = kv.Detach() })
	require.NoError(t, kv.Set(types.KeyCourseOfferings, []byte(
		`[{"id":"o1","name":"Group - English","courseTypeId":"t1","courseId":"c1"}]`)))
	require.NoError(t, kv.Set(types.KeyStudentRegistrations, []byte(`[`+
		`{"id":"r1","studentName":"Ann","courseOfferingId":"o1","email":"ann@example.com","registrationDate":"2024-03-01T09:30:00.000Z"},`+
		`{"id":"r2","studentName":"Ben","courseOfferingId":"o1","email":"ben@example.com","registrationDate":""}]`)))

	s := openTestState(kv)
	regs := s.Registrations.List()
	require.Len(t, regs, 1)
	assert.Equal(t, "Ann", regs[0].StudentName)

	// The next write keeps the surviving record.
	_, err := s.Registrations.Create(RegistrationInput{
		StudentName: "Cara", CourseOfferingID: "o1", Email: "cara@example.com",
	})
	require.NoError(t, err)

	reloaded := Open(kv)
	var names []string
	for _, r := range reloaded.Registrations.List() {
		names = append(names, r.StudentName)
	}
	assert.Equal(t, []string{"Ann", "Cara"}, names)
}

func TestFailedWriteKeepsPreviousState(t *testing.T) {
	kv := &failingStore{KVStore: memstore.New()}
	t.Cleanup(func() { _ = kv.Detach() })
	s := openTestState(kv)

	o := seedOffering(t, s, "Group", "English")
	before := storedJSON(t, kv, types.KeyCourseOfferings)

	kv.fail = true
	_, err := s.Courses.Create("Hindi")
	assert.ErrorIs(t, err, errDiskFull)
	assert.False(t, types.IsValidation(err))
	assert.Len(t, s.Courses.List(), 1)

	_, err = s.CourseTypes.Update(o.CourseTypeID, "Class")
	assert.ErrorIs(t, err, errDiskFull)
	ct, _ := s.CourseTypes.Get(o.CourseTypeID)
	assert.Equal(t, "Group", ct.Name)

	deleted, err := s.Offerings.Delete(o.ID, AlwaysConfirm)
	assert.ErrorIs(t, err, errDiskFull)
	assert.False(t, deleted)
	assert.Len(t, s.Offerings.List(), 1)

	_, err = s.Registrations.Create(RegistrationInput{StudentName: "Alice", CourseOfferingID: o.ID, Email: "a@b"})
	assert.ErrorIs(t, err, errDiskFull)
	assert.Zero(t, s.Registrations.Len())

	assert.Equal(t, before, storedJSON(t, kv, types.KeyCourseOfferings))

	kv.fail = false
	_, err = s.Courses.Create("Hindi")
	assert.NoError(t, err)
}

func TestSummary(t *testing.T) {
	s, _ := newTestState(t)
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		_, err := s.Courses.Create(name)
		require.NoError(t, err)
	}
	populate(t, s)

	sum := s.Summary(0)
	assert.Equal(t, 1, sum.CourseTypeCount)
	assert.Equal(t, 8, sum.CourseCount)
	assert.Equal(t, 1, sum.OfferingCount)
	assert.Equal(t, 1, sum.RegistrationCount)
	require.Len(t, sum.Courses, DashboardLimit)
	assert.Equal(t, "A", sum.Courses[0].Name)
	assert.Equal(t, "E", sum.Courses[4].Name)
	assert.Len(t, sum.Registrations, 1)

	assert.Len(t, s.Summary(2).Courses, 2)

	empty, _ := newTestState(t)
	sum = empty.Summary(DashboardLimit)
	assert.Zero(t, sum.CourseCount)
	assert.Empty(t, sum.Courses)
}

func TestCheckReportsDanglingReferences(t *testing.T) {
	s, _ := newTestState(t)
	populate(t, s)
	assert.Empty(t, s.Check())

	o := s.Offerings.List()[0]
	_, err := s.Courses.Delete(o.CourseID, AlwaysConfirm)
	require.NoError(t, err)
	refs := s.Check()
	require.Len(t, refs, 1)
	assert.Equal(t, "courseId", refs[0].Field)

	_, err = s.Offerings.Delete(o.ID, AlwaysConfirm)
	require.NoError(t, err)
	refs = s.Check()
	require.Len(t, refs, 1)
	assert.Equal(t, types.KeyStudentRegistrations, refs[0].Collection)

	o = seedOffering(t, s, "Individual", "Hindi")
	_, err = s.CourseTypes.Delete(o.CourseTypeID, AlwaysConfirm)
	require.NoError(t, err)

	refs = s.Check()
	require.Len(t, refs, 2)
	assert.Equal(t, DanglingRef{
		Collection: types.KeyCourseOfferings, ID: o.ID, Name: "Individual - Hindi",
		Field: "courseTypeId", Target: o.CourseTypeID,
	}, refs[0])
	assert.Equal(t, types.KeyStudentRegistrations, refs[1].Collection)
	assert.Equal(t, "Alice", refs[1].Name)
	assert.Equal(t, "courseOfferingId", refs[1].Field)
	assert.Contains(t, refs[1].String(), "is missing")
}

func TestEndToEndScenario(t *testing.T) {
	s, _ := newTestState(t)

	group, err := s.CourseTypes.Create("Group")
	require.NoError(t, err)
	english, err := s.Courses.Create("English")
	require.NoError(t, err)
	o, err := s.Offerings.Create(group.ID, english.ID)
	require.NoError(t, err)
	assert.Equal(t, "Group - English", o.Name)

	_, err = s.Offerings.Create(group.ID, english.ID)
	assert.EqualError(t, err, "This course offering already exists")

	_, err = s.Registrations.Create(RegistrationInput{StudentName: "Alice", CourseOfferingID: o.ID, Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = s.Registrations.Create(RegistrationInput{StudentName: "alice", CourseOfferingID: o.ID, Email: "alice2@example.com"})
	assert.EqualError(t, err, "This student is already registered for this course offering")

	rosters := s.Registrations.Rosters("Group")
	require.Len(t, rosters, 1)
	assert.Equal(t, "1 student registered", rosters[0].CountLabel())
	assert.WithinDuration(t, fixedTime, rosters[0].Registrations[0].RegistrationDate, time.Millisecond)
}

func TestPersistWritesEveryKey(t *testing.T) {
	s, kv := newTestState(t)
	require.NoError(t, s.Persist())
	for _, key := range types.StorageKeys {
		assert.Equal(t, "[]", storedJSON(t, kv, key), key)
	}

	populate(t, s)
	require.NoError(t, s.Persist())
	assert.JSONEq(t, encoded(t, s.Offerings.List()), storedJSON(t, kv, types.KeyCourseOfferings))
}
