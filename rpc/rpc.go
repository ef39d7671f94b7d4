package rpc

import (
	"context"
	"errors"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"leguru.net/keybindd/binding"
	"leguru.net/keybindd/logger"
	"leguru.net/keybindd/profile"
)

type Server struct {
	manager        *binding.Manager
	programName    string
	programVersion string
}

func NewServer(programName string, programVersion string, manager *binding.Manager) *Server {
	return &Server{programName: programName, programVersion: programVersion, manager: manager}
}

func (s *Server) SayHello(_ context.Context, req *HelloRequest) (*HelloReply, error) {
	return &HelloReply{Name: s.programName, Version: s.programVersion}, nil
}

// statusError translates store and manager errors to gRPC status codes.
func statusError(err error, msg string) error {
	if err == nil {
		return nil
	}
	code := codes.Internal
	switch {
	case errors.Is(err, profile.ErrProfileNotFound),
		errors.Is(err, profile.ErrMapNotFound),
		errors.Is(err, profile.ErrActionNotFound):
		code = codes.NotFound
	case errors.Is(err, profile.ErrInvalidAction),
		errors.Is(err, profile.ErrInvalidMatrix),
		errors.Is(err, profile.ErrEmptyName):
		code = codes.InvalidArgument
	case errors.Is(err, profile.ErrMapExists):
		code = codes.AlreadyExists
	case errors.Is(err, profile.ErrLastProfile),
		errors.Is(err, profile.ErrProfileInUse):
		code = codes.FailedPrecondition
	}
	if code == codes.Internal {
		logger.WithField("err", err).Error(msg)
	}
	return status.Errorf(code, "%s: %v", msg, err)
}

type RpcServer struct {
	port       string
	lis        net.Listener
	grpcServer *grpc.Server
}

func NewRpcServer(port string) *RpcServer {
	return &RpcServer{port: port}
}

func (s *RpcServer) serve() {
	if err := s.grpcServer.Serve(s.lis); err != nil {
		logger.WithField("err", err).Error("Failed to serve gRPC server")
	}
}

func (s *RpcServer) Start(programName string, programVersion string, manager *binding.Manager) error {
	lis, err := net.Listen("tcp", s.port)
	if err != nil {
		return err
	}
	s.StartOn(lis, programName, programVersion, manager)
	return nil
}

// StartOn serves on an existing listener.
func (s *RpcServer) StartOn(lis net.Listener, programName string, programVersion string, manager *binding.Manager) {
	s.lis = lis
	s.grpcServer = grpc.NewServer()
	RegisterBindingServer(s.grpcServer, NewServer(programName, programVersion, manager))
	logger.WithField("port", lis.Addr().String()).Info("Starting gRPC server")
	go s.serve()
}

func (s *RpcServer) Stop() {
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
}
