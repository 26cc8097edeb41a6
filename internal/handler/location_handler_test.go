package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/collecta-backend/internal/model"
	"github.com/shinyyama/collecta-backend/internal/service"
)

func TestParseItemIDs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []uint64
		wantErr bool
	}{
		{"basic", "1,2,3", []uint64{1, 2, 3}, false},
		{"whitespace", " 1, 2 ,3 ", []uint64{1, 2, 3}, false},
		{"single", "7", []uint64{7}, false},
		{"empty means no filter", "", nil, false},
		{"blank means no filter", "   ", nil, false},
		{"trailing comma", "1,2,", []uint64{1, 2}, false},
		{"non numeric", "1,a,3", nil, true},
		{"negative", "-1", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseItemIDs(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got=%v want=%v", got, tt.want)
			}
		})
	}
}

type fakeLocationService struct {
	getLoc      *model.Location
	getTitles   []string
	getErr      error
	searchLocs  []model.Location
	searchErr   error
	createLoc   *model.Location
	createErr   error
	setImageLoc *model.Location
	setImageErr error

	lastSearchCity  string
	lastSearchUF    string
	lastSearchItems []uint64
}

func (f *fakeLocationService) Create(ctx context.Context, in service.CreateLocationInput) (*model.Location, error) {
	return f.createLoc, f.createErr
}

func (f *fakeLocationService) Get(ctx context.Context, id uint64) (*model.Location, []string, error) {
	return f.getLoc, f.getTitles, f.getErr
}

func (f *fakeLocationService) SetImage(ctx context.Context, id uint64, image string) (*model.Location, error) {
	return f.setImageLoc, f.setImageErr
}

func (f *fakeLocationService) Search(ctx context.Context, city, uf string, itemIDs []uint64) ([]model.Location, error) {
	f.lastSearchCity = city
	f.lastSearchUF = uf
	f.lastSearchItems = itemIDs
	return f.searchLocs, f.searchErr
}

func TestGetLocationNotFoundMessage(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/locations/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	h := NewLocationHandler(&fakeLocationService{getErr: service.ErrNotFound}, nil)
	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=%d", rec.Code, http.StatusBadRequest)
	}
	var resp MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "Location not found." {
		t.Fatalf("message=%q", resp.Message)
	}
}

func TestSearchParsesItemsFilter(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/locations?city=Diadema&uf=SP&items=1,+2,3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	fake := &fakeLocationService{}
	h := NewLocationHandler(fake, nil)
	if err := h.Search(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if fake.lastSearchCity != "Diadema" || fake.lastSearchUF != "SP" {
		t.Fatalf("city=%q uf=%q", fake.lastSearchCity, fake.lastSearchUF)
	}
	if !reflect.DeepEqual(fake.lastSearchItems, []uint64{1, 2, 3}) {
		t.Fatalf("items=%v", fake.lastSearchItems)
	}
}

func TestSearchRejectsBadItemsFilter(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/locations?items=1,a", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewLocationHandler(&fakeLocationService{}, nil)
	if err := h.Search(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestCreateLocationValidationPayload(t *testing.T) {
	e := echo.New()
	body := `{"name":"","email":"x","whatsapp":"","latitude":1,"longitude":2,"city":"","uf":"SPX","items":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/locations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	fake := &fakeLocationService{createErr: &service.ValidationError{Fields: map[string]string{
		"name":  "is required",
		"items": "is required",
	}}}
	h := NewLocationHandler(fake, nil)
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rec.Code)
	}
	var resp ValidationErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := resp.Errors["name"]; !ok {
		t.Fatalf("missing field error, got %v", resp.Errors)
	}
}

type fakeUploader struct {
	stored string
}

func (f *fakeUploader) Upload(ctx context.Context, originalName, contentType string, r io.Reader) (string, error) {
	return f.stored, nil
}

func (f *fakeUploader) Close() error { return nil }

func multipartImageRequest(t *testing.T, target string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "point.jpg")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write([]byte("jpeg-bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPut, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestUpdateImageNotFoundMessage(t *testing.T) {
	e := echo.New()
	req := multipartImageRequest(t, "/api/locations/42")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	h := NewLocationHandler(&fakeLocationService{setImageErr: service.ErrNotFound}, &fakeUploader{stored: "a1b2c3.jpg"})
	if err := h.UpdateImage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rec.Code)
	}
	var resp MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "Location not found!" {
		t.Fatalf("message=%q", resp.Message)
	}
}

func TestUpdateImageStoresUpload(t *testing.T) {
	e := echo.New()
	req := multipartImageRequest(t, "/api/locations/7")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	image := "a1b2c3.jpg"
	fake := &fakeLocationService{setImageLoc: &model.Location{ID: 7, Name: "Eco Point", Image: &image}}
	h := NewLocationHandler(fake, &fakeUploader{stored: image})
	if err := h.UpdateImage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp LocationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Image == nil || *resp.Image != image {
		t.Fatalf("image=%v", resp.Image)
	}
}
