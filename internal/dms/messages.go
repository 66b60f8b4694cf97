package dms

import "encoding/xml"

// Wire structures for the legacy document server's SOAP operations.
// Result code zero means success, any other value is a failure.

type property struct {
	Name  string `xml:"name"`
	Value string `xml:"value"`
}

type propertyList struct {
	Items []property `xml:"item"`
}

type streamData struct {
	BufferSize   int    `xml:"bufferSize"`
	StreamBuffer string `xml:"streamBuffer"`
}

type loginRequest struct {
	XMLName      xml.Name `xml:"LoginSvr5"`
	Network      int      `xml:"network"`
	LoginContext string   `xml:"loginContext"`
	UserID       string   `xml:"userID"`
	Password     string   `xml:"password"`
	Authen       int      `xml:"authen"`
	DSTIn        string   `xml:"dstIn"`
}

type loginResponse struct {
	XMLName    xml.Name `xml:"LoginSvr5Response"`
	ResultCode int      `xml:"resultCode"`
	DSTOut     string   `xml:"dstOut"`
}

type createObjectRequest struct {
	XMLName    xml.Name     `xml:"CreateObject"`
	DSTIn      string       `xml:"dstIn"`
	ObjectType string       `xml:"objectType"`
	Properties propertyList `xml:"properties"`
}

type createObjectResponse struct {
	XMLName    xml.Name     `xml:"CreateObjectResponse"`
	ResultCode int          `xml:"resultCode"`
	Properties propertyList `xml:"properties"`
}

type updateObjectRequest struct {
	XMLName    xml.Name     `xml:"UpdateObject"`
	DSTIn      string       `xml:"dstIn"`
	ObjectType string       `xml:"objectType"`
	Properties propertyList `xml:"properties"`
}

type updateObjectResponse struct {
	XMLName    xml.Name `xml:"UpdateObjectResponse"`
	ResultCode int      `xml:"resultCode"`
}

type putDocRequest struct {
	XMLName        xml.Name `xml:"PutDoc"`
	DSTIn          string   `xml:"dstIn"`
	LibraryName    string   `xml:"libraryName"`
	DocumentNumber int64    `xml:"documentNumber"`
	VersionID      string   `xml:"versionID"`
}

type putDocResponse struct {
	XMLName    xml.Name `xml:"PutDocResponse"`
	ResultCode int      `xml:"resultCode"`
	PutDocID   int64    `xml:"putDocID"`
}

type getWriteStreamRequest struct {
	XMLName   xml.Name `xml:"GetWriteStream"`
	DSTIn     string   `xml:"dstIn"`
	ContentID int64    `xml:"contentID"`
}

type getWriteStreamResponse struct {
	XMLName    xml.Name `xml:"GetWriteStreamResponse"`
	ResultCode int      `xml:"resultCode"`
	StreamID   int64    `xml:"streamID"`
}

type writeStreamRequest struct {
	XMLName  xml.Name   `xml:"WriteStream"`
	StreamID int64      `xml:"streamID"`
	Data     streamData `xml:"streamData"`
}

type writeStreamResponse struct {
	XMLName    xml.Name `xml:"WriteStreamResponse"`
	ResultCode int      `xml:"resultCode"`
}

type commitStreamRequest struct {
	XMLName  xml.Name `xml:"CommitStream"`
	StreamID int64    `xml:"streamID"`
	Flags    int      `xml:"flags"`
}

type commitStreamResponse struct {
	XMLName    xml.Name `xml:"CommitStreamResponse"`
	ResultCode int      `xml:"resultCode"`
}

type releaseObjectRequest struct {
	XMLName  xml.Name `xml:"ReleaseObject"`
	ObjectID int64    `xml:"objectID"`
}

type releaseObjectResponse struct {
	XMLName    xml.Name `xml:"ReleaseObjectResponse"`
	ResultCode int      `xml:"resultCode"`
}

type getDocRequest struct {
	XMLName  xml.Name     `xml:"GetDocSvr3"`
	DSTIn    string       `xml:"dstIn"`
	Criteria propertyList `xml:"criteria"`
}

type getDocResponse struct {
	XMLName       xml.Name     `xml:"GetDocSvr3Response"`
	ResultCode    int          `xml:"resultCode"`
	GetDocID      int64        `xml:"getDocID"`
	DocProperties propertyList `xml:"docProperties"`
}

type getReadStreamRequest struct {
	XMLName  xml.Name `xml:"GetReadStream"`
	DSTIn    string   `xml:"dstIn"`
	GetDocID int64    `xml:"getDocID"`
}

type getReadStreamResponse struct {
	XMLName    xml.Name `xml:"GetReadStreamResponse"`
	ResultCode int      `xml:"resultCode"`
	StreamID   int64    `xml:"streamID"`
}

type readStreamRequest struct {
	XMLName        xml.Name `xml:"ReadStream"`
	StreamID       int64    `xml:"streamID"`
	RequestedBytes int      `xml:"requestedBytes"`
}

type readStreamResponse struct {
	XMLName    xml.Name   `xml:"ReadStreamResponse"`
	ResultCode int        `xml:"resultCode"`
	Data       streamData `xml:"streamData"`
}
