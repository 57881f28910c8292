package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "taskjournal.service.TaskJournalService"

// FullMethod returns the gRPC method path, e.g. "/taskjournal.service.TaskJournalService/Login".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// TaskJournalServiceServer is the server API for TaskJournalService.
type TaskJournalServiceServer interface {
	RegisterUser(context.Context, *RegisterUserRequest) (*Profile, error)
	Login(context.Context, *LoginRequest) (*Session, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*Session, error)
	Logout(context.Context, *LogoutRequest) (*Empty, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)

	GetProfile(context.Context, *Empty) (*Profile, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*Profile, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*Empty, error)
	GetTheme(context.Context, *Empty) (*ThemeResponse, error)
	ChangeTheme(context.Context, *ChangeThemeRequest) (*ChangeThemeResponse, error)
	DeleteAccount(context.Context, *Empty) (*Empty, error)

	AddTask(context.Context, *AddTaskRequest) (*Task, error)
	CompleteTask(context.Context, *TaskIDRequest) (*Task, error)
	ReopenTask(context.Context, *TaskIDRequest) (*Task, error)
	ListInbox(context.Context, *Empty) (*TaskList, error)
	ListToday(context.Context, *ListTodayRequest) (*TaskList, error)
	ListCompleted(context.Context, *Empty) (*TaskList, error)
}

// UnimplementedTaskJournalServiceServer answers every method with
// codes.Unimplemented. Embed it to stay forward compatible.
type UnimplementedTaskJournalServiceServer struct{}

func (UnimplementedTaskJournalServiceServer) RegisterUser(context.Context, *RegisterUserRequest) (*Profile, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterUser not implemented")
}
func (UnimplementedTaskJournalServiceServer) Login(context.Context, *LoginRequest) (*Session, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedTaskJournalServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*Session, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedTaskJournalServiceServer) Logout(context.Context, *LogoutRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedTaskJournalServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedTaskJournalServiceServer) GetProfile(context.Context, *Empty) (*Profile, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedTaskJournalServiceServer) UpdateProfile(context.Context, *UpdateProfileRequest) (*Profile, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateProfile not implemented")
}
func (UnimplementedTaskJournalServiceServer) ChangePassword(context.Context, *ChangePasswordRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method ChangePassword not implemented")
}
func (UnimplementedTaskJournalServiceServer) GetTheme(context.Context, *Empty) (*ThemeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTheme not implemented")
}
func (UnimplementedTaskJournalServiceServer) ChangeTheme(context.Context, *ChangeThemeRequest) (*ChangeThemeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChangeTheme not implemented")
}
func (UnimplementedTaskJournalServiceServer) DeleteAccount(context.Context, *Empty) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteAccount not implemented")
}
func (UnimplementedTaskJournalServiceServer) AddTask(context.Context, *AddTaskRequest) (*Task, error) {
	return nil, status.Error(codes.Unimplemented, "method AddTask not implemented")
}
func (UnimplementedTaskJournalServiceServer) CompleteTask(context.Context, *TaskIDRequest) (*Task, error) {
	return nil, status.Error(codes.Unimplemented, "method CompleteTask not implemented")
}
func (UnimplementedTaskJournalServiceServer) ReopenTask(context.Context, *TaskIDRequest) (*Task, error) {
	return nil, status.Error(codes.Unimplemented, "method ReopenTask not implemented")
}
func (UnimplementedTaskJournalServiceServer) ListInbox(context.Context, *Empty) (*TaskList, error) {
	return nil, status.Error(codes.Unimplemented, "method ListInbox not implemented")
}
func (UnimplementedTaskJournalServiceServer) ListToday(context.Context, *ListTodayRequest) (*TaskList, error) {
	return nil, status.Error(codes.Unimplemented, "method ListToday not implemented")
}
func (UnimplementedTaskJournalServiceServer) ListCompleted(context.Context, *Empty) (*TaskList, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCompleted not implemented")
}

func RegisterTaskJournalServiceServer(s grpc.ServiceRegistrar, srv TaskJournalServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unaryHandler[Req, Resp any](method string, call func(TaskJournalServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	fullMethod := FullMethod(method)
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TaskJournalServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TaskJournalServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc is the grpc.ServiceDesc for TaskJournalService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TaskJournalServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterUser", Handler: unaryHandler("RegisterUser", TaskJournalServiceServer.RegisterUser)},
		{MethodName: "Login", Handler: unaryHandler("Login", TaskJournalServiceServer.Login)},
		{MethodName: "RefreshToken", Handler: unaryHandler("RefreshToken", TaskJournalServiceServer.RefreshToken)},
		{MethodName: "Logout", Handler: unaryHandler("Logout", TaskJournalServiceServer.Logout)},
		{MethodName: "Ping", Handler: unaryHandler("Ping", TaskJournalServiceServer.Ping)},
		{MethodName: "GetProfile", Handler: unaryHandler("GetProfile", TaskJournalServiceServer.GetProfile)},
		{MethodName: "UpdateProfile", Handler: unaryHandler("UpdateProfile", TaskJournalServiceServer.UpdateProfile)},
		{MethodName: "ChangePassword", Handler: unaryHandler("ChangePassword", TaskJournalServiceServer.ChangePassword)},
		{MethodName: "GetTheme", Handler: unaryHandler("GetTheme", TaskJournalServiceServer.GetTheme)},
		{MethodName: "ChangeTheme", Handler: unaryHandler("ChangeTheme", TaskJournalServiceServer.ChangeTheme)},
		{MethodName: "DeleteAccount", Handler: unaryHandler("DeleteAccount", TaskJournalServiceServer.DeleteAccount)},
		{MethodName: "AddTask", Handler: unaryHandler("AddTask", TaskJournalServiceServer.AddTask)},
		{MethodName: "CompleteTask", Handler: unaryHandler("CompleteTask", TaskJournalServiceServer.CompleteTask)},
		{MethodName: "ReopenTask", Handler: unaryHandler("ReopenTask", TaskJournalServiceServer.ReopenTask)},
		{MethodName: "ListInbox", Handler: unaryHandler("ListInbox", TaskJournalServiceServer.ListInbox)},
		{MethodName: "ListToday", Handler: unaryHandler("ListToday", TaskJournalServiceServer.ListToday)},
		{MethodName: "ListCompleted", Handler: unaryHandler("ListCompleted", TaskJournalServiceServer.ListCompleted)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "taskjournal/service.json",
}

// TaskJournalServiceClient is the client API for TaskJournalService.
type TaskJournalServiceClient interface {
	RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*Profile, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*Session, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*Session, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*Empty, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)

	GetProfile(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Profile, error)
	UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*Profile, error)
	ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*Empty, error)
	GetTheme(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ThemeResponse, error)
	ChangeTheme(ctx context.Context, in *ChangeThemeRequest, opts ...grpc.CallOption) (*ChangeThemeResponse, error)
	DeleteAccount(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)

	AddTask(ctx context.Context, in *AddTaskRequest, opts ...grpc.CallOption) (*Task, error)
	CompleteTask(ctx context.Context, in *TaskIDRequest, opts ...grpc.CallOption) (*Task, error)
	ReopenTask(ctx context.Context, in *TaskIDRequest, opts ...grpc.CallOption) (*Task, error)
	ListInbox(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*TaskList, error)
	ListToday(ctx context.Context, in *ListTodayRequest, opts ...grpc.CallOption) (*TaskList, error)
	ListCompleted(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*TaskList, error)
}

type taskJournalServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTaskJournalServiceClient(cc grpc.ClientConnInterface) TaskJournalServiceClient {
	return &taskJournalServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *taskJournalServiceClient) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, "RegisterUser", in, opts)
}

func (c *taskJournalServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c.cc, "Login", in, opts)
}

func (c *taskJournalServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c.cc, "RefreshToken", in, opts)
}

func (c *taskJournalServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "Logout", in, opts)
}

func (c *taskJournalServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, "Ping", in, opts)
}

func (c *taskJournalServiceClient) GetProfile(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, "GetProfile", in, opts)
}

func (c *taskJournalServiceClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, "UpdateProfile", in, opts)
}

func (c *taskJournalServiceClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "ChangePassword", in, opts)
}

func (c *taskJournalServiceClient) GetTheme(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ThemeResponse, error) {
	return invoke[ThemeResponse](ctx, c.cc, "GetTheme", in, opts)
}

func (c *taskJournalServiceClient) ChangeTheme(ctx context.Context, in *ChangeThemeRequest, opts ...grpc.CallOption) (*ChangeThemeResponse, error) {
	return invoke[ChangeThemeResponse](ctx, c.cc, "ChangeTheme", in, opts)
}

func (c *taskJournalServiceClient) DeleteAccount(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteAccount", in, opts)
}

func (c *taskJournalServiceClient) AddTask(ctx context.Context, in *AddTaskRequest, opts ...grpc.CallOption) (*Task, error) {
	return invoke[Task](ctx, c.cc, "AddTask", in, opts)
}

func (c *taskJournalServiceClient) CompleteTask(ctx context.Context, in *TaskIDRequest, opts ...grpc.CallOption) (*Task, error) {
	return invoke[Task](ctx, c.cc, "CompleteTask", in, opts)
}

func (c *taskJournalServiceClient) ReopenTask(ctx context.Context, in *TaskIDRequest, opts ...grpc.CallOption) (*Task, error) {
	return invoke[Task](ctx, c.cc, "ReopenTask", in, opts)
}

func (c *taskJournalServiceClient) ListInbox(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*TaskList, error) {
	return invoke[TaskList](ctx, c.cc, "ListInbox", in, opts)
}

func (c *taskJournalServiceClient) ListToday(ctx context.Context, in *ListTodayRequest, opts ...grpc.CallOption) (*TaskList, error) {
	return invoke[TaskList](ctx, c.cc, "ListToday", in, opts)
}

func (c *taskJournalServiceClient) ListCompleted(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*TaskList, error) {
	return invoke[TaskList](ctx, c.cc, "ListCompleted", in, opts)
}
