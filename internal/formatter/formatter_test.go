package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_SimpleStruct(t *testing.T) {
	input := `package main

type Person struct {
Name string
Age int64
IsActive bool
}


`

	formatted, err := NewFormatter().Format(input, "go")
	require.NoError(t, err)

	expectedOutput := `package main

type Person struct {
	Name     string
	Age      int64
	IsActive bool
}
`

	assert.Equal(t, expectedOutput, formatted)
}

func TestFormat_WithImports(t *testing.T) {
	input := `package main

import (
"time"
"github.com/google/uuid"
)

type Event struct {
ID uuid.UUID
CreatedAt time.Time
Name string
}
`

	formatted, err := NewFormatter().Format(input, "go")
	require.NoError(t, err)

	// Standard library first, then third-party, separated by a blank line
	expectedOutput := `package main

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Name      string
}
`

	assert.Equal(t, expectedOutput, formatted)
}

func TestFormat_MultipleStructs(t *testing.T) {
	input := "package main\n\n" +
		"type User struct {\n\tProfile UserProfile\n\tUserId int64\n}\n\n" +
		"type UserProfile struct {\n\tFullName string\n}\n\n"

	formatted, err := NewFormatter().Format(input, ".go")
	require.NoError(t, err)

	expectedOutput := "package main\n\n" +
		"type User struct {\n\tProfile UserProfile\n\tUserId  int64\n}\n\n" +
		"type UserProfile struct {\n\tFullName string\n}\n"

	assert.Equal(t, expectedOutput, formatted)
}

func TestFormat_InvalidCode(t *testing.T) {
	input := `package main

type Person struct {
	Name string
`

	_, err := NewFormatter().Format(input, "go")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestFormat_EmptyInput(t *testing.T) {
	formatted, err := NewFormatter().Format("  \n", "go")

	require.NoError(t, err)
	assert.Equal(t, "", formatted)
}

func TestFormat_PreservesComments(t *testing.T) {
	input := `package main

// Person represents a person in the system
type Person struct {
	// Name of the person
	Name string
	// Age of the person in years
	Age  int64
}
`

	formatted, err := NewFormatter().Format(input, "go")
	require.NoError(t, err)

	expectedOutput := `package main

// Person represents a person in the system
type Person struct {
	// Name of the person
	Name string
	// Age of the person in years
	Age int64
}
`

	assert.Equal(t, expectedOutput, formatted)
}

func TestFormat_OtherTargetsPassThrough(t *testing.T) {
	tests := []struct {
		ext  string
		code string
	}{
		{"rs", "pub struct A {\n    pub x:   i64,\n}\n\n"},
		{"py", "class A:\n    x: int\n\n\n"},
		{"txt", "not { even } code"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			f := NewFormatter()
			assert.False(t, f.Supports(tt.ext))

			formatted, err := f.Format(tt.code, tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.code, formatted)
		})
	}
}
