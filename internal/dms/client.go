package dms

import (
	"context"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rta-dms/pta-archive-api/internal/models"
	"github.com/rta-dms/pta-archive-api/pkg/config"
)

const (
	// writeChunkSize is the upload buffer size per WriteStream call.
	writeChunkSize = 48 * 1024
	// readChunkSize is the number of bytes requested per ReadStream call.
	readChunkSize = 64 * 1024

	objectTypeDocumentProfile = "DEF_PROF"
	objectTypeProfile         = "Profile"
	profileTypeID             = "DEFAULT"
	securityInherited         = "1"
	statusUnlock              = "%UNLOCK"
)

// Client talks to the legacy document management server over SOAP.
type Client struct {
	httpClient   *http.Client
	endpoint     string
	library      string
	loginContext string
	logger       *zap.Logger
}

// UploadRequest describes one document to store in the DMS.
type UploadRequest struct {
	DocName  string
	Abstract string
	AppID    string
	Author   string
	Content  []byte
}

// UploadResult reports the identifiers the DMS assigned to the stored
// document.
type UploadResult struct {
	DocNumber int64
	VersionID string
}

// NewClient builds a client from configuration.
func NewClient(cfg config.DMSConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		endpoint:     cfg.EndpointURL,
		library:      cfg.Library,
		loginContext: cfg.LoginContext,
		logger:       logger,
	}
}

// Login authenticates against the DMS and returns the session token
// (DST) that all later operations must carry.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	req := loginRequest{
		Network:      0,
		LoginContext: c.loginContext,
		UserID:       username,
		Password:     password,
		Authen:       1,
		DSTIn:        "",
	}

	var resp loginResponse
	if err := c.call(ctx, "LoginSvr5", req, &resp); err != nil {
		return "", err
	}

	if resp.ResultCode != 0 || resp.DSTOut == "" {
		c.logger.Warn("dms login rejected",
			zap.String("username", username),
			zap.Int("result_code", resp.ResultCode))
		return "", ErrLoginFailed
	}

	return resp.DSTOut, nil
}

// Upload stores a document in the DMS and returns its assigned document
// number. The sequence is create profile, open content, stream the
// bytes, commit, then unlock the profile. Handles obtained along the
// way are released on every path.
func (c *Client) Upload(ctx context.Context, dst string, upload UploadRequest) (*UploadResult, error) {
	props := NewPropertySet().
		Set(PropTargetLibrary, c.library).
		Set(PropRecentlyUsedLocation, `DOCSOPEN!L\`+c.library).
		Set(PropDocName, upload.DocName).
		Set(PropTypeID, profileTypeID).
		Set(PropAuthorID, upload.Author).
		Set(PropTypistID, upload.Author).
		Set(PropAbstract, upload.Abstract).
		Set(PropAppID, upload.AppID).
		Set(PropSecurity, securityInherited)

	createReq := createObjectRequest{
		DSTIn:      dst,
		ObjectType: objectTypeDocumentProfile,
		Properties: props.wire(),
	}

	var createResp createObjectResponse
	if err := c.call(ctx, "CreateObject", createReq, &createResp); err != nil {
		return nil, err
	}
	if createResp.ResultCode != 0 {
		return nil, &CallError{Op: "CreateObject", Code: createResp.ResultCode}
	}

	returned := propertySetFromWire(createResp.Properties)
	rawDocNumber, ok := returned.Get(PropObjectIdentifier)
	if !ok {
		return nil, &CallError{Op: "CreateObject", Code: -1}
	}
	docNumber, err := strconv.ParseInt(rawDocNumber, 10, 64)
	if err != nil {
		return nil, &CallError{Op: "CreateObject", Code: -1}
	}
	versionID, _ := returned.Get(PropVersionID)

	putReq := putDocRequest{
		DSTIn:          dst,
		LibraryName:    c.library,
		DocumentNumber: docNumber,
		VersionID:      versionID,
	}

	var putResp putDocResponse
	if err := c.call(ctx, "PutDoc", putReq, &putResp); err != nil {
		return nil, err
	}
	if putResp.ResultCode != 0 {
		return nil, &CallError{Op: "PutDoc", Code: putResp.ResultCode}
	}

	defer c.release(ctx, putResp.PutDocID)

	var streamResp getWriteStreamResponse
	if err := c.call(ctx, "GetWriteStream", getWriteStreamRequest{DSTIn: dst, ContentID: putResp.PutDocID}, &streamResp); err != nil {
		return nil, err
	}
	if streamResp.ResultCode != 0 {
		return nil, &CallError{Op: "GetWriteStream", Code: streamResp.ResultCode}
	}

	defer c.release(ctx, streamResp.StreamID)

	if err := c.writeContent(ctx, streamResp.StreamID, upload.Content); err != nil {
		return nil, err
	}

	var commitResp commitStreamResponse
	if err := c.call(ctx, "CommitStream", commitStreamRequest{StreamID: streamResp.StreamID, Flags: 0}, &commitResp); err != nil {
		return nil, err
	}
	if commitResp.ResultCode != 0 {
		return nil, &CallError{Op: "CommitStream", Code: commitResp.ResultCode}
	}

	// Leaving the profile locked does not invalidate the stored
	// content, so a failed unlock is logged and swallowed.
	if err := c.unlockProfile(ctx, dst, docNumber); err != nil {
		c.logger.Warn("dms profile unlock failed",
			zap.Int64("doc_number", docNumber),
			zap.Error(err))
	}

	return &UploadResult{DocNumber: docNumber, VersionID: versionID}, nil
}

func (c *Client) writeContent(ctx context.Context, streamID int64, content []byte) error {
	for offset := 0; offset < len(content); offset += writeChunkSize {
		end := offset + writeChunkSize
		if end > len(content) {
			end = len(content)
		}
		chunk := content[offset:end]

		req := writeStreamRequest{
			StreamID: streamID,
			Data: streamData{
				BufferSize:   len(chunk),
				StreamBuffer: base64.StdEncoding.EncodeToString(chunk),
			},
		}

		var resp writeStreamResponse
		if err := c.call(ctx, "WriteStream", req, &resp); err != nil {
			return err
		}
		if resp.ResultCode != 0 {
			return &CallError{Op: "WriteStream", Code: resp.ResultCode}
		}
	}

	return nil
}

func (c *Client) unlockProfile(ctx context.Context, dst string, docNumber int64) error {
	// The unlock call wants its identifiers lowercased.
	props := NewPropertySet().
		Set(PropObjectTypeID, strings.ToLower(objectTypeDocumentProfile)).
		Set(PropObjectIdentifier, strconv.FormatInt(docNumber, 10)).
		Set(PropTargetLibrary, strings.ToLower(c.library)).
		Set(PropStatus, statusUnlock)

	req := updateObjectRequest{
		DSTIn:      dst,
		ObjectType: objectTypeProfile,
		Properties: props.wire(),
	}

	var resp updateObjectResponse
	if err := c.call(ctx, "UpdateObject", req, &resp); err != nil {
		return err
	}
	if resp.ResultCode != 0 {
		return &CallError{Op: "UpdateObject", Code: resp.ResultCode}
	}

	return nil
}

// Retrieve fetches a stored document by its DMS document number. A
// search miss returns ErrDocumentNotFound.
func (c *Client) Retrieve(ctx context.Context, dst string, docNumber int64) (*models.StoredDocument, error) {
	criteria := NewPropertySet().
		Set(PropTargetLibrary, c.library).
		Set(PropDocumentNumber, strconv.FormatInt(docNumber, 10))

	var docResp getDocResponse
	if err := c.call(ctx, "GetDocSvr3", getDocRequest{DSTIn: dst, Criteria: criteria.wire()}, &docResp); err != nil {
		return nil, err
	}
	if docResp.ResultCode != 0 {
		return nil, ErrDocumentNotFound
	}

	defer c.release(ctx, docResp.GetDocID)

	fileName := strconv.FormatInt(docNumber, 10)
	if name, ok := propertySetFromWire(docResp.DocProperties).Get(PropVersionFileName); ok && name != "" {
		fileName = name
	}

	var streamResp getReadStreamResponse
	if err := c.call(ctx, "GetReadStream", getReadStreamRequest{DSTIn: dst, GetDocID: docResp.GetDocID}, &streamResp); err != nil {
		return nil, err
	}
	if streamResp.ResultCode != 0 {
		return nil, &CallError{Op: "GetReadStream", Code: streamResp.ResultCode}
	}

	defer c.release(ctx, streamResp.StreamID)

	content, err := c.readContent(ctx, streamResp.StreamID)
	if err != nil {
		return nil, err
	}

	return &models.StoredDocument{
		DocNumber: docNumber,
		FileName:  fileName,
		Content:   content,
	}, nil
}

func (c *Client) readContent(ctx context.Context, streamID int64) ([]byte, error) {
	var content []byte

	for {
		req := readStreamRequest{StreamID: streamID, RequestedBytes: readChunkSize}

		var resp readStreamResponse
		if err := c.call(ctx, "ReadStream", req, &resp); err != nil {
			return nil, err
		}

		// A non-zero code past the first chunk signals end of stream
		// rather than failure.
		if resp.ResultCode != 0 {
			break
		}

		chunk, err := base64.StdEncoding.DecodeString(resp.Data.StreamBuffer)
		if err != nil {
			return nil, &CallError{Op: "ReadStream", Code: -1}
		}
		if len(chunk) == 0 {
			break
		}

		content = append(content, chunk...)
	}

	return content, nil
}

// release hands an object handle back to the server. Failures are
// logged only, the handle expires server-side regardless.
func (c *Client) release(ctx context.Context, objectID int64) {
	if objectID == 0 {
		return
	}

	var resp releaseObjectResponse
	if err := c.call(ctx, "ReleaseObject", releaseObjectRequest{ObjectID: objectID}, &resp); err != nil {
		c.logger.Debug("dms release failed", zap.Int64("object_id", objectID), zap.Error(err))
	}
}
