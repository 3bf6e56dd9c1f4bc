package uploader

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immichclient/pkg/asset"
)

type fakeSession struct {
	fn func(path string, header http.Header, body io.Reader) (*http.Response, error)
}

func (s *fakeSession) Post(path string, header http.Header, body io.Reader) (*http.Response, error) {
	return s.fn(path, header, body)
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func testAsset() *asset.Asset {
	return &asset.Asset{
		DeviceAssetID: "garden.jpg",
		DeviceID:      "test-client",
		Data:          []byte("image bytes"),
		Checksum:      "4cb6bfc3d436c695b230d50cb5ab1d79eaf32f6e",
	}
}

const remoteID = "41a3a296-7e86-4eb4-8e44-aead03344fc9"

func TestUploadCreated(t *testing.T) {
	var gotPath string
	var gotHeader http.Header
	var gotBody []byte
	session := &fakeSession{fn: func(path string, header http.Header, body io.Reader) (*http.Response, error) {
		gotPath = path
		gotHeader = header
		gotBody, _ = io.ReadAll(body)
		return respond(http.StatusCreated, `{"id":"`+remoteID+`","status":"created"}`), nil
	}}

	outcome := Upload(session, testAsset())
	assert.Equal(t, StatusCreated, outcome.Status)
	assert.Equal(t, remoteID, outcome.RemoteID)
	assert.Equal(t, "garden.jpg", outcome.DeviceAssetID)
	assert.NoError(t, outcome.Err)

	assert.Equal(t, "/assets", gotPath)
	assert.Equal(t, "4cb6bfc3d436c695b230d50cb5ab1d79eaf32f6e", gotHeader.Get("x-immich-checksum"))
	assert.Contains(t, gotHeader.Get("Content-Type"), "multipart/form-data")
	assert.Contains(t, string(gotBody), `name="deviceAssetId"`)
	assert.Contains(t, string(gotBody), "garden.jpg")
	assert.Contains(t, string(gotBody), "image bytes")
}

func TestUploadDuplicate(t *testing.T) {
	session := &fakeSession{fn: func(string, http.Header, io.Reader) (*http.Response, error) {
		return respond(http.StatusOK, `{"id":"`+remoteID+`","status":"duplicate"}`), nil
	}}

	outcome := Upload(session, testAsset())
	assert.Equal(t, StatusDuplicate, outcome.Status)
	assert.Equal(t, remoteID, outcome.RemoteID)
	assert.NoError(t, outcome.Err)
}

func TestUploadAuthRejected(t *testing.T) {
	session := &fakeSession{fn: func(string, http.Header, io.Reader) (*http.Response, error) {
		return respond(http.StatusUnauthorized, `{"message":"invalid token"}`), nil
	}}

	outcome := Upload(session, testAsset())
	assert.Equal(t, StatusFailed, outcome.Status)
	assert.ErrorIs(t, outcome.Err, ErrAuth)
	assert.Empty(t, outcome.RemoteID)
}

func TestUploadServerError(t *testing.T) {
	session := &fakeSession{fn: func(string, http.Header, io.Reader) (*http.Response, error) {
		return respond(http.StatusInternalServerError, "boom"), nil
	}}

	outcome := Upload(session, testAsset())
	assert.Equal(t, StatusFailed, outcome.Status)

	var statusErr *StatusError
	require.ErrorAs(t, outcome.Err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, "boom", statusErr.Body)
}

func TestUploadTransportFailure(t *testing.T) {
	session := &fakeSession{fn: func(string, http.Header, io.Reader) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	}}

	outcome := Upload(session, testAsset())
	assert.Equal(t, StatusFailed, outcome.Status)
	assert.ErrorIs(t, outcome.Err, ErrTransport)
}

func TestUploadMalformedResponse(t *testing.T) {
	cases := map[string]string{
		"truncated json": `{"id":"`,
		"bad remote id":  `{"id":"not-a-uuid","status":"created"}`,
		"unknown status": `{"id":"` + remoteID + `","status":"teleported"}`,
	}
	for name, body := range cases {
		session := &fakeSession{fn: func(string, http.Header, io.Reader) (*http.Response, error) {
			return respond(http.StatusOK, body), nil
		}}
		outcome := Upload(session, testAsset())
		assert.Equal(t, StatusFailed, outcome.Status, name)
		assert.ErrorIs(t, outcome.Err, ErrInvalidResponse, name)
	}
}
