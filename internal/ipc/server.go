package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"
	"time"

	"log/slog"

	"viralclip/internal/clipfilter"
	"viralclip/internal/daemon"
	"viralclip/internal/logging"
	"viralclip/internal/logtail"
	"viralclip/internal/services"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName("ViralClip", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed",
					logging.Error(err),
					logging.String(logging.FieldEventType, "ipc_accept_failed"),
					logging.String(logging.FieldErrorHint, "Check socket permissions and restart the daemon if needed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldEventType, "ipc_socket_cleanup_failed"),
			logging.String(logging.FieldErrorHint, "Remove the socket file manually"))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

// userErr reduces an error to its user-facing message before it crosses the
// RPC boundary, where only the string survives.
func userErr(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(services.UserMessage(err))
}

func (s *service) Analyze(req AnalyzeRequest, resp *AnalyzeResponse) error {
	s.log().Debug("analyze requested", logging.String("url", req.VideoURL))
	if err := s.daemon.Analyze(s.ctx, req.VideoURL, req.Platform); err != nil {
		return userErr(err)
	}
	resp.Accepted = true
	resp.Session = s.daemon.Session()
	return nil
}

func (s *service) AnalyzeSubtitles(req AnalyzeSubtitlesRequest, resp *AnalyzeResponse) error {
	s.log().Debug("subtitle analyze requested", logging.String("file", req.FileName))
	if err := s.daemon.AnalyzeSubtitles(s.ctx, req.FileName, req.Content, req.VideoURL); err != nil {
		return userErr(err)
	}
	resp.Accepted = true
	resp.Session = s.daemon.Session()
	return nil
}

func (s *service) Session(_ SessionRequest, resp *SessionResponse) error {
	resp.Session = s.daemon.Session()
	return nil
}

func (s *service) Await(req AwaitRequest, resp *AwaitResponse) error {
	ctx := s.ctx
	if req.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(s.ctx, time.Duration(req.TimeoutSeconds)*time.Second)
		defer cancel()
	}
	snap, err := s.daemon.AwaitSession(ctx)
	if err != nil {
		return userErr(err)
	}
	resp.Session = snap
	return nil
}

func (s *service) Clips(req ClipsRequest, resp *ClipsResponse) error {
	criteria := clipfilter.DefaultCriteria()
	if req.Category != "" {
		criteria.Category = req.Category
	}
	if req.MinScore > 0 {
		criteria.MinScore = req.MinScore
	}
	if req.SortKey != "" {
		criteria.SortKey = req.SortKey
	}

	projected, stats, canDownload := s.daemon.Clips(criteria)
	resp.Clips = make([]Clip, 0, len(projected))
	for _, c := range projected {
		resp.Clips = append(resp.Clips, FromClip(c))
	}
	resp.Stats = Stats{Count: stats.Count, AvgScore: stats.AvgScore, TopCategory: stats.TopCategory}
	resp.CanDownload = canDownload
	resp.Total = s.daemon.Session().ClipCount
	return nil
}

func (s *service) ClipShow(req ClipShowRequest, resp *ClipShowResponse) error {
	c, err := s.daemon.Clip(req.ID)
	if err != nil {
		return userErr(err)
	}
	resp.Clip = FromClip(c)
	return nil
}

func (s *service) ExportReport(req ExportReportRequest, resp *ExportReportResponse) error {
	report, err := s.daemon.ExportReport(req.ID)
	if err != nil {
		return userErr(err)
	}
	resp.Text = report.Text
	resp.FileName = report.FileName
	resp.FFmpegCommand = report.FFmpegCommand
	s.log().Info("clip report exported",
		logging.String(logging.FieldEventType, "export_report"),
		logging.String("clip", req.ID))
	return nil
}

func (s *service) ExportMedia(req ExportMediaRequest, resp *ExportMediaResponse) error {
	path, err := s.daemon.ExportMedia(s.ctx, req.ID, req.Quality)
	if err != nil {
		return userErr(err)
	}
	resp.Path = path
	s.log().Info("clip media exported",
		logging.String(logging.FieldEventType, "export_media"),
		logging.String("clip", req.ID),
		logging.String("path", path))
	return nil
}

func (s *service) Reset(_ ResetRequest, resp *ResetResponse) error {
	s.daemon.Reset()
	resp.Reset = true
	s.log().Info("session reset via IPC",
		logging.String(logging.FieldEventType, "session_reset"))
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status()
	resp.Running = status.Running
	resp.PID = status.PID
	resp.StartedAt = status.StartedAt
	resp.ServiceURL = status.ServiceURL
	resp.LockPath = status.LockFilePath
	resp.SocketPath = status.SocketPath
	resp.LogPath = status.LogPath
	resp.Session = status.Session
	return nil
}

func (s *service) Health(_ HealthRequest, resp *HealthResponse) error {
	if err := s.daemon.ServiceHealth(s.ctx); err != nil {
		resp.ServiceReachable = false
		resp.Detail = services.UserMessage(err)
		return nil
	}
	resp.ServiceReachable = true
	resp.Detail = "analysis service reachable"
	return nil
}

func (s *service) Logs(req LogsRequest, resp *LogsResponse) error {
	opts := logtail.Options{
		Offset: req.Offset,
		Limit:  req.Limit,
		Wait:   time.Duration(req.WaitSeconds) * time.Second,
	}
	result, err := s.daemon.TailLogs(s.ctx, opts)
	if err != nil {
		return userErr(err)
	}
	resp.Lines = result.Lines
	resp.Offset = result.Offset
	return nil
}

func (s *service) TestNotification(_ TestNotificationRequest, resp *TestNotificationResponse) error {
	sent, message, err := s.daemon.TestNotification(s.ctx)
	resp.Sent = sent
	resp.Message = message
	return userErr(err)
}
