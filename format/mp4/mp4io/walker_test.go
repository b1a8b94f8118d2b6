package mp4io

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ugparu/mp4inspect/utils"
)

type visit struct {
	Tag       string
	Offset    int64
	Depth     int
	BodySize  uint64
	Body      []byte
	Truncated bool
	Decoded   string
}

type recordingSink struct {
	visits []visit
	ends   []int
	failOn string
}

func (s *recordingSink) Box(p *BoxPreview) error {
	if p.Header.Type.String() == s.failOn {
		return errors.New("sink failure")
	}
	s.visits = append(s.visits, visit{
		Tag:       p.Header.Type.String(),
		Offset:    p.Header.Offset,
		Depth:     p.Depth,
		BodySize:  p.BodySize,
		Body:      append([]byte(nil), p.Body...),
		Truncated: p.Truncated,
		Decoded:   p.Decoded,
	})
	return nil
}

func (s *recordingSink) EndLevel(depth int) error {
	s.ends = append(s.ends, depth)
	return nil
}

func (s *recordingSink) tags() (tags []string) {
	for _, v := range s.visits {
		tags = append(tags, v.Tag)
	}
	return
}

func walkBytes(t *testing.T, b []byte, opts ...WalkOption) (*recordingSink, error) {
	t.Helper()
	sink := &recordingSink{}
	err := Walk(bytes.NewReader(b), int64(len(b)), sink, opts...)
	return sink, err
}

func TestWalk(t *testing.T) {
	t.Parallel()

	t.Run("descends_into_containers", func(t *testing.T) {
		t.Parallel()
		file := bytes.Join([][]byte{
			box("ftyp", []byte("isom")),
			box("moov",
				box("mvhd", make([]byte, 4)),
				box("trak", box("mdia", box("minf", box("stbl", box("stsz", make([]byte, 12)))))),
			),
			box("mdat", []byte{1, 2, 3}),
		}, nil)

		sink, err := walkBytes(t, file)
		require.NoError(t, err)
		require.Equal(t, []string{"ftyp", "moov", "mvhd", "trak", "mdia", "minf", "stbl", "stsz", "mdat"}, sink.tags())
		depths := []int{}
		for _, v := range sink.visits {
			depths = append(depths, v.Depth)
		}
		require.Equal(t, []int{0, 0, 1, 1, 2, 3, 4, 5, 0}, depths)
		require.Equal(t, []int{5, 4, 3, 2, 1, 0}, sink.ends)
		require.Equal(t, int64(len(box("ftyp", []byte("isom")))), sink.visits[1].Offset)
		require.Equal(t, []byte{1, 2, 3}, sink.visits[8].Body)
	})

	t.Run("mvhd_is_a_leaf", func(t *testing.T) {
		t.Parallel()
		// mvhd body that happens to look like a child box
		file := box("moov", box("mvhd", box("free")))
		sink, err := walkBytes(t, file)
		require.NoError(t, err)
		require.Equal(t, []string{"moov", "mvhd"}, sink.tags())
	})

	t.Run("preview_is_bounded", func(t *testing.T) {
		t.Parallel()
		body := bytes.Repeat([]byte{0xab}, 300)
		sink, err := walkBytes(t, box("free", body))
		require.NoError(t, err)
		require.Len(t, sink.visits, 1)
		require.Len(t, sink.visits[0].Body, DefaultPreviewLimit)
		require.True(t, sink.visits[0].Truncated)
		require.Equal(t, uint64(300), sink.visits[0].BodySize)

		sink, err = walkBytes(t, box("free", body), WithPreviewLimit(0))
		require.NoError(t, err)
		require.Empty(t, sink.visits[0].Body)
		require.True(t, sink.visits[0].Truncated)
	})

	t.Run("huge_preview_limit", func(t *testing.T) {
		t.Parallel()
		body := bytes.Repeat([]byte{0xcd}, 300)
		for _, limit := range []int{256 << 20, 1 << 50} {
			sink, err := walkBytes(t, append(box("free", body), box("skip", body[:8])...), WithPreviewLimit(limit))
			require.NoError(t, err)
			require.Len(t, sink.visits, 2)
			require.Equal(t, body, sink.visits[0].Body)
			require.False(t, sink.visits[0].Truncated)
			require.Equal(t, body[:8], sink.visits[1].Body)
		}

		cfg := walkConfig{}
		WithPreviewLimit(1 << 50)(&cfg)
		require.Equal(t, MaxPreviewLimit, cfg.previewLimit)
	})

	t.Run("large_size_box", func(t *testing.T) {
		t.Parallel()
		file := append(largeBox("mdat", []byte{9, 9}), box("free")...)
		sink, err := walkBytes(t, file)
		require.NoError(t, err)
		require.Equal(t, []string{"mdat", "free"}, sink.tags())
		require.Equal(t, uint64(2), sink.visits[0].BodySize)
		require.Equal(t, int64(18), sink.visits[1].Offset)
	})

	t.Run("size_zero_ends_level", func(t *testing.T) {
		t.Parallel()
		file := append(box("ftyp", []byte("isom")), openBox("mdat", []byte{1, 2, 3, 4})...)
		sink, err := walkBytes(t, file)
		require.NoError(t, err)
		require.Equal(t, []string{"ftyp", "mdat"}, sink.tags())
		require.Equal(t, uint64(4), sink.visits[1].BodySize)
	})

	t.Run("size_zero_inside_container", func(t *testing.T) {
		t.Parallel()
		file := append(box("moov", box("mvhd"), openBox("udta", []byte{7, 7})), box("free")...)
		sink, err := walkBytes(t, file)
		require.NoError(t, err)
		require.Equal(t, []string{"moov", "mvhd", "udta", "free"}, sink.tags())
		require.Equal(t, uint64(2), sink.visits[2].BodySize)
	})

	t.Run("child_overruns_parent", func(t *testing.T) {
		t.Parallel()
		child := box("trak", make([]byte, 8))
		file := box("moov", child)
		// parent claims fewer bytes than the child needs
		file[3] = byte(len(file) - 4)
		file = append(file, make([]byte, 4)...)
		_, err := walkBytes(t, file)
		require.ErrorIs(t, err, utils.ErrMalformedBox)
	})

	t.Run("box_runs_past_end", func(t *testing.T) {
		t.Parallel()
		file := box("free", make([]byte, 8))
		_, err := walkBytes(t, file[:12])
		require.ErrorIs(t, err, utils.ErrMalformedBox)
	})

	t.Run("trailing_partial_header", func(t *testing.T) {
		t.Parallel()
		file := append(box("free"), 0, 0, 0)
		_, err := walkBytes(t, file)
		require.ErrorIs(t, err, utils.ErrIO)
	})

	t.Run("depth_limit", func(t *testing.T) {
		t.Parallel()
		file := box("moov", box("trak", box("mdia")))
		_, err := walkBytes(t, file, WithMaxDepth(2))
		require.ErrorIs(t, err, utils.ErrMalformedBox)

		_, err = walkBytes(t, file, WithMaxDepth(4))
		require.NoError(t, err)
	})

	t.Run("custom_containers", func(t *testing.T) {
		t.Parallel()
		file := box("udta", box("meta"))
		sink, err := walkBytes(t, file, WithContainers(StringToTag("udta")))
		require.NoError(t, err)
		require.Equal(t, []string{"udta", "meta"}, sink.tags())
	})

	t.Run("sink_error_stops_walk", func(t *testing.T) {
		t.Parallel()
		sink := &recordingSink{failOn: "mdat"}
		file := append(box("free"), box("mdat")...)
		err := Walk(bytes.NewReader(file), int64(len(file)), sink)
		require.EqualError(t, err, "sink failure")
		require.Equal(t, []string{"free"}, sink.tags())
	})
}

// greedyDecoder reads more than it should to prove the walker re-seeks.
type greedyDecoder struct{}

func (greedyDecoder) Decode(r io.ReadSeeker, hdr BoxHeader, size uint64) (string, bool, error) {
	if hdr.Type != StringToTag("free") {
		return "", false, nil
	}
	_, _ = io.Copy(io.Discard, r)
	return "greedy", true, nil
}

func TestWalkReseeksAfterDecoder(t *testing.T) {
	t.Parallel()

	file := bytes.Join([][]byte{box("free", []byte{1}), box("skip", []byte{2}), box("free")}, nil)
	sink, err := walkBytes(t, file, WithDecoder(greedyDecoder{}))
	require.NoError(t, err)
	require.Equal(t, []string{"free", "skip", "free"}, sink.tags())
	require.Equal(t, "greedy", sink.visits[0].Decoded)
	require.Empty(t, sink.visits[1].Decoded)
}
