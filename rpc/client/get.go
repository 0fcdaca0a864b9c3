package client

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
)

// RPCGet do a http GET and unmarshal the JSON result
func RPCGet(result interface{}, url string) error {
	return RPCGetRequest(result, url, nil, nil, defaultTimeout)
}

// RPCGetWithTimeout like RPCGet with a timeout in seconds
func RPCGetWithTimeout(result interface{}, url string, timeout int) error {
	return RPCGetRequest(result, url, nil, nil, timeout)
}

// RPCGetRequest do a http GET request with params and headers
func RPCGetRequest(result interface{}, url string, params, headers map[string]string, timeout int) error {
	resp, err := HTTPGet(url, params, headers, timeout)
	if err != nil {
		return fmt.Errorf("GET request error: %v (url: %v, params: %v)", err, url, params)
	}

	if resp.StatusCode != 200 {
		resp.Body.Close()
		return fmt.Errorf("error response status: %v (url: %v)", resp.StatusCode, url)
	}

	defer resp.Body.Close()
	const maxReadContentLength int64 = 1024 * 1024 * 10 // 10M
	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxReadContentLength))
	if err != nil {
		return fmt.Errorf("read body error: %v", err)
	}

	err = json.Unmarshal(body, &result)
	if err != nil {
		return fmt.Errorf("unmarshal result error: %v", err)
	}
	return nil
}
