package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Analyze submits a video URL for analysis.
func (c *Client) Analyze(req AnalyzeRequest) (*AnalyzeResponse, error) {
	var resp AnalyzeResponse
	if err := c.client.Call("ViralClip.Analyze", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AnalyzeSubtitles submits a subtitle file for analysis.
func (c *Client) AnalyzeSubtitles(req AnalyzeSubtitlesRequest) (*AnalyzeResponse, error) {
	var resp AnalyzeResponse
	if err := c.client.Call("ViralClip.AnalyzeSubtitles", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Session fetches the current session snapshot.
func (c *Client) Session() (*SessionResponse, error) {
	var resp SessionResponse
	if err := c.client.Call("ViralClip.Session", SessionRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Await blocks until the in-flight analysis completes.
func (c *Client) Await(timeoutSeconds int) (*AwaitResponse, error) {
	var resp AwaitResponse
	req := AwaitRequest{TimeoutSeconds: timeoutSeconds}
	if err := c.client.Call("ViralClip.Await", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Clips projects the collection through filter criteria.
func (c *Client) Clips(req ClipsRequest) (*ClipsResponse, error) {
	var resp ClipsResponse
	if err := c.client.Call("ViralClip.Clips", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClipShow fetches a single clip by id.
func (c *Client) ClipShow(id string) (*ClipShowResponse, error) {
	var resp ClipShowResponse
	if err := c.client.Call("ViralClip.ClipShow", ClipShowRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExportReport renders the text report for a clip.
func (c *Client) ExportReport(id string) (*ExportReportResponse, error) {
	var resp ExportReportResponse
	if err := c.client.Call("ViralClip.ExportReport", ExportReportRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExportMedia downloads a clip's media into the daemon's export directory.
func (c *Client) ExportMedia(id, quality string) (*ExportMediaResponse, error) {
	var resp ExportMediaResponse
	req := ExportMediaRequest{ID: id, Quality: quality}
	if err := c.client.Call("ViralClip.ExportMedia", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reset returns the session to idle and clears the clip collection.
func (c *Client) Reset() (*ResetResponse, error) {
	var resp ResetResponse
	if err := c.client.Call("ViralClip.Reset", ResetRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("ViralClip.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health probes the analysis service through the daemon.
func (c *Client) Health() (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.client.Call("ViralClip.Health", HealthRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logs fetches daemon log lines.
func (c *Client) Logs(req LogsRequest) (*LogsResponse, error) {
	var resp LogsResponse
	if err := c.client.Call("ViralClip.Logs", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestNotification triggers a notification test via the daemon.
func (c *Client) TestNotification() (*TestNotificationResponse, error) {
	var resp TestNotificationResponse
	if err := c.client.Call("ViralClip.TestNotification", TestNotificationRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
