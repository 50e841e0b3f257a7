package mcpserver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oafront/internal/testutil"
)

func TestOperationsTool_ListsAll(t *testing.T) {
	docCache.reset()
	input := operationsInput{Spec: specInput{Content: testutil.PetstoreYAML}}

	result, output, err := handleOperations(context.Background(), nil, input)
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.Equal(t, 4, output.Total)
	assert.Equal(t, 4, output.Returned)
	ids := make([]string, 0, len(output.Operations))
	for _, op := range output.Operations {
		ids = append(ids, op.OperationID)
	}
	assert.Equal(t, []string{"listPets", "createPet", "showPetById", "deletePet"}, ids)

	show := output.Operations[2]
	assert.Equal(t, "get", show.Method)
	assert.Equal(t, "/pets/{petId}", show.Path)
	assert.Equal(t, 1, show.SuccessCount)
	assert.False(t, show.FullResponse)
}

func TestOperationsTool_MethodFilter(t *testing.T) {
	docCache.reset()
	input := operationsInput{Spec: specInput{Content: testutil.PetstoreYAML}, Method: "GET"}

	_, output, err := handleOperations(context.Background(), nil, input)
	require.NoError(t, err)
	assert.Equal(t, 2, output.Total)
	for _, op := range output.Operations {
		assert.Equal(t, "get", op.Method)
	}
}

func TestOperationsTool_Pagination(t *testing.T) {
	docCache.reset()
	input := operationsInput{Spec: specInput{Content: testutil.PetstoreYAML}, Offset: 1, Limit: 2}

	_, output, err := handleOperations(context.Background(), nil, input)
	require.NoError(t, err)
	assert.Equal(t, 4, output.Total)
	assert.Equal(t, 2, output.Returned)
	assert.Equal(t, "createPet", output.Operations[0].OperationID)
	assert.Equal(t, "showPetById", output.Operations[1].OperationID)
}

func TestOperationsTool_FullResponseFlag(t *testing.T) {
	docCache.reset()
	content := `openapi: 3.0.3
info:
  title: Jobs
  version: 1.0.0
paths:
  /jobs:
    post:
      responses:
        '200':
          description: Done
        '202':
          description: Accepted
`
	_, output, err := handleOperations(context.Background(), nil, operationsInput{Spec: specInput{Content: content}})
	require.NoError(t, err)
	require.Len(t, output.Operations, 1)
	assert.Equal(t, "postJobs", output.Operations[0].OperationID)
	assert.Equal(t, 2, output.Operations[0].SuccessCount)
	assert.True(t, output.Operations[0].FullResponse)
}

func TestOperationsTool_BadSpec(t *testing.T) {
	result, _, err := handleOperations(context.Background(), nil, operationsInput{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
