package nav

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		token string
		want  Selection
	}{
		{"lang_hi", Language{Code: "hi"}},
		{"main_menu", MainMenu{}},
		{"class_10", Class{Class: "10"}},
		{"subject_10_Mathematics", Subject{Class: "10", Subject: "Mathematics"}},
		{"subject_10_Social_Science", Subject{Class: "10", Subject: "Social_Science"}},
		{"subject_9_Social Science", Subject{Class: "9", Subject: "Social Science"}},
		{"year_10_Mathematics_2023", Year{Class: "10", Subject: "Mathematics", Year: "2023"}},
		{"year_12_Computer_Science_Lab_2022", Year{Class: "12", Subject: "Computer_Science_Lab", Year: "2022"}},
		{"back_to_class", BackToClasses{}},
		{"back_to_subject_11", BackToSubjects{Class: "11"}},
		{"search", Search{}},
		{"admin_panel", AdminPanel{}},
		{"admin_add", AdminAdd{}},
		{"admin_view", AdminView{}},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			got, err := Decode(tc.token)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.token, Encode(got))
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	unknown := []string{"", "hello", "classes", "admin", "back_to"}
	for _, token := range unknown {
		_, err := Decode(token)
		assert.Truef(t, errors.Is(err, ErrUnknownToken), "%q: %v", token, err)
	}

	malformedTokens := []string{"lang_", "class_", "subject_10", "subject__Maths", "year_10_2023", "year_10_Maths_", "back_to_subject_"}
	for _, token := range malformedTokens {
		_, err := Decode(token)
		assert.Truef(t, errors.Is(err, ErrMalformedToken), "%q: %v", token, err)
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "year", KindOf("year_10_Mathematics_2023"))
	assert.Equal(t, "back_to_subject", KindOf("back_to_subject_10"))
	assert.Equal(t, "", KindOf("nope"))
}

func TestFits(t *testing.T) {
	assert.True(t, Fits(Year{Class: "10", Subject: "Mathematics", Year: "2023"}))
	long := Subject{Class: "10", Subject: "A subject name that is far too long for telegram callback data"}
	assert.False(t, Fits(long))
}

func TestKindsCoverEverySelection(t *testing.T) {
	sels := []Selection{
		Language{Code: "en"}, MainMenu{}, Class{Class: "10"},
		Subject{Class: "10", Subject: "Mathematics"},
		Year{Class: "10", Subject: "Mathematics", Year: "2023"},
		BackToClasses{}, BackToSubjects{Class: "10"}, Search{},
		AdminPanel{}, AdminAdd{}, AdminView{},
	}
	kinds := Kinds()
	require.Len(t, kinds, len(sels))
	for _, s := range sels {
		assert.Contains(t, kinds, s.Kind())
		assert.Equal(t, string(s.Kind()), KindOf(Encode(s)))
	}
}
