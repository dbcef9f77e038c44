package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kataras/figma-sparrow/pkg/extractor"
	"github.com/kataras/figma-sparrow/pkg/figma"
)

func component(id, name string) *figma.Node {
	return &figma.Node{ID: id, Name: name, Type: figma.TypeComponent}
}

func TestExtractAll_KeepsJobOrder(t *testing.T) {
	var jobs []Job
	for i := 0; i < 40; i++ {
		id := fmt.Sprintf("%d:1", i)
		jobs = append(jobs, Job{NodeID: id, Node: component(id, fmt.Sprintf("Component %d", i))})
	}

	result := ExtractAll(jobs, nil, 3)

	require.Empty(t, result.Errors)
	require.Len(t, result.Docs, len(jobs))
	for i, d := range result.Docs {
		assert.Equal(t, jobs[i].NodeID, d.NodeID)
		assert.Equal(t, fmt.Sprintf("Component %d", i), d.Name)
	}
}

func TestExtractAll_CollectsFailures(t *testing.T) {
	loop := component("2:1", "Loop")
	loop.Children = []*figma.Node{loop}

	jobs := []Job{
		{NodeID: "1:1", Node: component("1:1", "Button"), Description: "A button."},
		{NodeID: "2:1", Node: loop},
		{NodeID: "3:1", Node: nil},
		{NodeID: "4:1", Node: component("4:1", "Card")},
	}

	result := ExtractAll(jobs, figma.VariableNames{}, 0)

	require.Len(t, result.Docs, 2)
	assert.Equal(t, "Button", result.Docs[0].Name)
	assert.Equal(t, "A button.", result.Docs[0].Description.Overview)
	assert.Equal(t, "Card", result.Docs[1].Name)

	require.Len(t, result.Errors, 2)
	assert.True(t, errors.Is(result.Errors[0], extractor.ErrCycle))
	assert.Contains(t, result.Errors[0].Error(), "2:1")
	assert.Contains(t, result.Errors[1].Error(), "3:1")
}

func TestExtractAll_NoJobs(t *testing.T) {
	result := ExtractAll(nil, nil, 2)
	assert.Empty(t, result.Docs)
	assert.Empty(t, result.Errors)
}

func TestJobsFromNodes(t *testing.T) {
	resp := &figma.NodesResponse{
		Name: "Design System",
		Nodes: map[string]*figma.NodeData{
			"1:1": {
				Document:   figma.Node{ID: "1:1", Name: "Button", Type: figma.TypeComponent},
				Components: map[string]figma.Component{"1:1": {Description: "Triggers an action."}},
			},
			"2:2": {Document: figma.Node{ID: "2:2", Name: "Card", Type: figma.TypeFrame}},
		},
	}

	jobs, errs := JobsFromNodes(resp, []string{"2:2", "9:9", "1:1"})

	require.Len(t, jobs, 2)
	assert.Equal(t, "2:2", jobs[0].NodeID)
	assert.Equal(t, "Card", jobs[0].Node.Name)
	assert.Equal(t, "1:1", jobs[1].NodeID)
	assert.Equal(t, "Triggers an action.", jobs[1].Description)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "9:9")
}

func TestJobsFromNodes_NullNode(t *testing.T) {
	var resp figma.NodesResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "Design System",
		"nodes": {
			"1:2": null,
			"3:4": {"document": {"id": "3:4", "name": "Badge", "type": "COMPONENT"}}
		}
	}`), &resp))

	jobs, errs := JobsFromNodes(&resp, []string{"1:2", "3:4"})

	require.Len(t, jobs, 1)
	assert.Equal(t, "3:4", jobs[0].NodeID)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "node 1:2 not found")

	result := ExtractAll(jobs, nil, 2)
	require.Len(t, result.Docs, 1)
	assert.Equal(t, "Badge", result.Docs[0].Name)
}

func TestExtractAll_Progress(t *testing.T) {
	loop := component("9:1", "Loop")
	loop.Children = []*figma.Node{loop}

	jobs := []Job{
		{NodeID: "1:1", Node: component("1:1", "Button")},
		{NodeID: "9:1", Node: loop},
		{NodeID: "3:1", Node: component("3:1", "Card")},
	}

	var calls [][2]int
	result := ExtractAll(jobs, nil, 2, WithProgress(func(done, total int) {
		calls = append(calls, [2]int{done, total})
	}))

	assert.Len(t, result.Docs, 2)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, calls, "failed jobs count as finished")
}
