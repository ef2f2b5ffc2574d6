package price

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/goldbook"
)

// jwget performs an HTTP GET request and decodes the JSON response. Numbers
// are decoded as json.Number so that prices keep their exact decimal value.
func jwget(ctx context.Context, client *http.Client, addr string, header http.Header) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("invalid json from %v: %w", req.URL.Host, err)
	}
	return data, nil
}

// amountAt extracts the number at a jsonpath.
func amountAt(path string, data any) (goldbook.Amount, error) {
	v, err := jsonpath.Get(path, data)
	if err != nil {
		return goldbook.Amount{}, err
	}
	switch n := v.(type) {
	case json.Number:
		return goldbook.ParseAmount(n.String())
	case float64:
		return goldbook.A(n), nil
	default:
		return goldbook.Amount{}, fmt.Errorf("%s is not a number: %v", path, v)
	}
}

// stringAt extracts the string at a jsonpath.
func stringAt(path string, data any) (string, error) {
	v, err := jsonpath.Get(path, data)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s is not a string: %v", path, v)
	}
	return s, nil
}
