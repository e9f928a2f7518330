// ABOUTME: Tests for YouTube channel to RSS URL conversion
// ABOUTME: Uses a stub page fetcher for handle and custom URL resolution

package media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChannelID = "UCabcdefghijklmnopqrstuv"

type stubPages struct {
	pages     map[string]string
	requested []string
}

func (s *stubPages) Fetch(_ context.Context, url string) (string, error) {
	s.requested = append(s.requested, url)
	page, ok := s.pages[url]
	if !ok {
		return "", errors.New("not found")
	}
	return page, nil
}

func TestYouTubeFeedURL(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{testChannelID, ChannelFeedURL(testChannelID), true},
		{"https://www.youtube.com/channel/" + testChannelID + "/videos", ChannelFeedURL(testChannelID), true},
		{"https://www.youtube.com/user/oldschool?x=1", UserFeedURL("oldschool"), true},
		{"oldschool", UserFeedURL("oldschool"), true},
		{"https://www.youtube.com/feeds/videos.xml?channel_id=" + testChannelID, "https://www.youtube.com/feeds/videos.xml?channel_id=" + testChannelID, true},
		{"@handle", "", false},
		{"https://www.youtube.com/c/custom", "", false},
		{"two words", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := YouTubeFeedURL(tt.input)
		assert.Equal(t, tt.wantOK, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestResolveYouTube_Handle(t *testing.T) {
	pages := &stubPages{pages: map[string]string{
		"https://www.youtube.com/@maker": `<script>var x = {"channelId":"` + testChannelID + `"}</script>`,
	}}

	got, err := ResolveYouTube(context.Background(), pages, "https://www.youtube.com/@maker/videos")
	require.NoError(t, err)
	assert.Equal(t, ChannelFeedURL(testChannelID), got)

	got, err = ResolveYouTube(context.Background(), pages, "@maker")
	require.NoError(t, err)
	assert.Equal(t, ChannelFeedURL(testChannelID), got)
}

func TestResolveYouTube_Custom(t *testing.T) {
	pages := &stubPages{pages: map[string]string{
		"https://www.youtube.com/c/studio": `channelId: "` + testChannelID + `"`,
	}}

	got, err := ResolveYouTube(context.Background(), pages, "https://www.youtube.com/c/studio?sub=1")
	require.NoError(t, err)
	assert.Equal(t, ChannelFeedURL(testChannelID), got)
}

func TestResolveYouTube_OfflineInputsSkipFetch(t *testing.T) {
	pages := &stubPages{}
	got, err := ResolveYouTube(context.Background(), pages, testChannelID)
	require.NoError(t, err)
	assert.Equal(t, ChannelFeedURL(testChannelID), got)
	assert.Empty(t, pages.requested)
}

func TestResolveYouTube_Errors(t *testing.T) {
	pages := &stubPages{pages: map[string]string{
		"https://www.youtube.com/@nobody": "<html>no id here</html>",
	}}

	_, err := ResolveYouTube(context.Background(), pages, "@nobody")
	assert.ErrorIs(t, err, ErrChannelNotFound)

	_, err = ResolveYouTube(context.Background(), pages, "@missing")
	assert.Error(t, err)

	_, err = ResolveYouTube(context.Background(), pages, "not a channel")
	assert.ErrorIs(t, err, ErrNotYouTube)
}

func TestLooksLikeYouTube(t *testing.T) {
	assert.True(t, LooksLikeYouTube("https://www.youtube.com/@someone"))
	assert.True(t, LooksLikeYouTube("@someone"))
	assert.True(t, LooksLikeYouTube(testChannelID))
	assert.False(t, LooksLikeYouTube("oldschool"))
	assert.False(t, LooksLikeYouTube("https://blog.example/feed.xml"))
}
