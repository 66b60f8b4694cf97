package dms

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
)

const (
	soapEnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	serviceNS      = "http://docs.opentext.com/dm/service"
)

type requestEnvelope struct {
	XMLName xml.Name `xml:"soap:Envelope"`
	SoapNS  string   `xml:"xmlns:soap,attr"`
	DmNS    string   `xml:"xmlns,attr"`
	Body    requestBody
}

type requestBody struct {
	XMLName xml.Name `xml:"soap:Body"`
	Payload interface{}
}

type responseEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Inner []byte `xml:",innerxml"`
	} `xml:"Body"`
}

// call performs one SOAP round trip. The payload is wrapped in an
// envelope, posted with the matching SOAPAction header and the body
// element of the reply is decoded into response.
func (c *Client) call(ctx context.Context, action string, request, response interface{}) error {
	env := requestEnvelope{
		SoapNS: soapEnvelopeNS,
		DmNS:   serviceNS,
		Body:   requestBody{Payload: request},
	}

	raw, err := xml.Marshal(env)
	if err != nil {
		return fmt.Errorf("dms: encode %s: %w", action, err)
	}

	buf := bytes.NewBufferString(xml.Header)
	buf.Write(raw)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, buf)
	if err != nil {
		return fmt.Errorf("dms: build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", fmt.Sprintf("%q", serviceNS+"/"+action))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("dms: %s: %w", action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("dms: read %s response: %w", action, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dms: %s returned HTTP %d", action, resp.StatusCode)
	}

	var respEnv responseEnvelope
	if err := xml.Unmarshal(body, &respEnv); err != nil {
		return fmt.Errorf("dms: decode %s envelope: %w", action, err)
	}

	if err := xml.Unmarshal(respEnv.Body.Inner, response); err != nil {
		return fmt.Errorf("dms: decode %s body: %w", action, err)
	}

	return nil
}
