package llm

import (
	"context"
	"testing"

	"github.com/paulrobello/auto-tool-agent/internal/models"
	"github.com/paulrobello/auto-tool-agent/internal/vendors/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plan struct {
	Steps     []string `json:"steps"`
	NeedsTool bool     `json:"needs_tool"`
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"fenced", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced with tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripFences(tc.in))
		})
	}
}

func TestExtract(t *testing.T) {
	ext, err := NewExtractor[plan]()
	require.NoError(t, err)
	chat := models.Chat{Messages: []models.Message{
		{Role: "system", Content: "plan things. " + ext.SchemaInstruction()},
		{Role: "user", Content: "list the files"},
	}}

	t.Run("it should parse a valid reply", func(t *testing.T) {
		m := &mock.Mock{Replies: []models.Message{
			mock.TextReply(`{"steps":["list files"],"needs_tool":true}`),
		}}
		got, err := ext.Extract(context.Background(), m, chat)
		require.NoError(t, err)
		assert.True(t, got.NeedsTool)
		assert.Equal(t, []string{"list files"}, got.Steps)
	})

	t.Run("it should accept fenced replies", func(t *testing.T) {
		m := &mock.Mock{Replies: []models.Message{
			mock.TextReply("```json\n{\"steps\":[],\"needs_tool\":false}\n```"),
		}}
		got, err := ext.Extract(context.Background(), m, chat)
		require.NoError(t, err)
		assert.False(t, got.NeedsTool)
	})

	t.Run("it should repair once on malformed replies", func(t *testing.T) {
		m := &mock.Mock{Replies: []models.Message{
			mock.TextReply("sure! here is the plan"),
			mock.TextReply(`{"steps":["a"],"needs_tool":false}`),
		}}
		got, err := ext.Extract(context.Background(), m, chat)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, got.Steps)
		chats := m.Chats()
		require.Len(t, chats, 2)
		last := chats[1].Messages[len(chats[1].Messages)-1]
		assert.Contains(t, last.Content, "could not be parsed")
	})

	t.Run("it should give up after one repair", func(t *testing.T) {
		m := &mock.Mock{Replies: []models.Message{
			mock.TextReply("nope"),
			mock.TextReply("still nope"),
		}}
		_, err := ext.Extract(context.Background(), m, chat)
		require.Error(t, err)
	})

	t.Run("it should reject schema mismatches", func(t *testing.T) {
		m := &mock.Mock{Replies: []models.Message{
			mock.TextReply(`{"steps":"not-an-array","needs_tool":false}`),
			mock.TextReply(`{"steps":"not-an-array","needs_tool":false}`),
		}}
		_, err := ext.Extract(context.Background(), m, chat)
		require.Error(t, err)
	})
}
