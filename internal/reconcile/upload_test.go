package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/five82/tubeclone/internal/catalog"
)

type fakeCreator struct {
	got   *catalog.Upload
	video catalog.Video
	err   error
}

func (f *fakeCreator) Upload(_ context.Context, req catalog.Upload) (catalog.Video, error) {
	f.got = &req
	return f.video, f.err
}

func TestUploadFields_Validate(t *testing.T) {
	tests := []struct {
		name   string
		fields UploadFields
		want   []error
	}{
		{"ok", UploadFields{Title: "t", VideoURL: "https://example.com/v.mp4"}, nil},
		{"ok without description", UploadFields{Title: "t", VideoURL: "http://example.com/v.mp4"}, nil},
		{"missing title", UploadFields{Title: "  ", VideoURL: "https://example.com/v.mp4"}, []error{ErrTitleRequired}},
		{"missing url", UploadFields{Title: "t"}, []error{ErrVideoURLRequired}},
		{"relative url", UploadFields{Title: "t", VideoURL: "/videos/1.mp4"}, []error{ErrVideoURLInvalid}},
		{"wrong scheme", UploadFields{Title: "t", VideoURL: "ftp://example.com/v.mp4"}, []error{ErrVideoURLInvalid}},
		{"both missing", UploadFields{Description: "d"}, []error{ErrTitleRequired, ErrVideoURLRequired}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fields.Validate()
			if len(tt.want) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Fatalf("Validate() = %v, want it to include %v", err, want)
				}
			}
		})
	}
}

func TestSubmitUpload_Success(t *testing.T) {
	creator := &fakeCreator{video: catalog.Video{ID: "6", Title: "My video"}}

	v, err := SubmitUpload(context.Background(), creator, UploadFields{
		Title:       " My video ",
		Description: "about",
		VideoURL:    "https://example.com/v.mp4",
	})
	if err != nil {
		t.Fatalf("SubmitUpload returned error: %v", err)
	}
	if v.ID != "6" {
		t.Fatalf("ID = %q, want 6", v.ID)
	}
	want := catalog.Upload{Title: "My video", Description: "about", VideoURL: "https://example.com/v.mp4", Channel: DefaultChannel}
	if creator.got == nil || *creator.got != want {
		t.Fatalf("payload = %#v, want %#v", creator.got, want)
	}
}

func TestSubmitUpload_InvalidFieldsSkipCreator(t *testing.T) {
	creator := &fakeCreator{}
	_, err := SubmitUpload(context.Background(), creator, UploadFields{Title: "t"})
	if !errors.Is(err, ErrVideoURLRequired) {
		t.Fatalf("err = %v, want ErrVideoURLRequired", err)
	}
	if creator.got != nil {
		t.Fatalf("creator called with invalid fields")
	}
}

func TestSubmitUpload_CreatorFailure(t *testing.T) {
	boom := errors.New("boom")
	creator := &fakeCreator{err: boom}

	_, err := SubmitUpload(context.Background(), creator, UploadFields{Title: "t", VideoURL: "https://example.com/v.mp4"})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}
