package dto_test

import (
	"testing"

	"github.com/lilnurik/uniadmit/internal/app/models/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFacultyIDs(t *testing.T) {
	ids, err := dto.ParseFacultyIDs("[1,2,3]")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	_, err = dto.ParseFacultyIDs("1,2,3")
	assert.Error(t, err)

	_, err = dto.ParseFacultyIDs(`["a"]`)
	assert.Error(t, err)
}

func TestParseFacultyIDsStr(t *testing.T) {
	ids, err := dto.ParseFacultyIDsStr("1, 2 ,3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	ids, err = dto.ParseFacultyIDsStr("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = dto.ParseFacultyIDsStr("1,x")
	assert.Error(t, err)
}
