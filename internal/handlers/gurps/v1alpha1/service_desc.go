// Package v1alpha1 exposes the character service over gRPC.
//
// Requests and responses are google.protobuf.Struct messages holding the
// JSON form of the service inputs and outputs, so any gRPC client with the
// well-known types can call it without generated stubs.
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name
const ServiceName = "gurps.api.v1alpha1.CharacterService"

// Method names
const (
	MethodCreateCharacter = "CreateCharacter"
	MethodGetCharacter    = "GetCharacter"
	MethodListCharacters  = "ListCharacters"
	MethodUpdateCharacter = "UpdateCharacter"
	MethodDeleteCharacter = "DeleteCharacter"
	MethodExportCharacter = "ExportCharacter"
	MethodImportCharacter = "ImportCharacter"
	MethodListExports     = "ListExports"
	MethodGetSummary      = "GetSummary"
	MethodRollSkill       = "RollSkill"
	MethodRollDamage      = "RollDamage"
	MethodListCatalog     = "ListCatalog"
	MethodAddFromCatalog  = "AddFromCatalog"
)

// FullMethod returns "/{service}/{method}"
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// CharacterServiceServer is the server API for the character service
type CharacterServiceServer interface {
	CreateCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCharacters(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExportCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ImportCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListExports(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollSkill(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollDamage(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCatalog(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddFromCatalog(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(CharacterServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CharacterServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(CharacterServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// CharacterServiceDesc describes the character service for grpc.Server
var CharacterServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CharacterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(MethodCreateCharacter, CharacterServiceServer.CreateCharacter),
		unaryMethod(MethodGetCharacter, CharacterServiceServer.GetCharacter),
		unaryMethod(MethodListCharacters, CharacterServiceServer.ListCharacters),
		unaryMethod(MethodUpdateCharacter, CharacterServiceServer.UpdateCharacter),
		unaryMethod(MethodDeleteCharacter, CharacterServiceServer.DeleteCharacter),
		unaryMethod(MethodExportCharacter, CharacterServiceServer.ExportCharacter),
		unaryMethod(MethodImportCharacter, CharacterServiceServer.ImportCharacter),
		unaryMethod(MethodListExports, CharacterServiceServer.ListExports),
		unaryMethod(MethodGetSummary, CharacterServiceServer.GetSummary),
		unaryMethod(MethodRollSkill, CharacterServiceServer.RollSkill),
		unaryMethod(MethodRollDamage, CharacterServiceServer.RollDamage),
		unaryMethod(MethodListCatalog, CharacterServiceServer.ListCatalog),
		unaryMethod(MethodAddFromCatalog, CharacterServiceServer.AddFromCatalog),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gurps/api/v1alpha1/character.proto",
}

// RegisterCharacterServiceServer registers srv on s
func RegisterCharacterServiceServer(s grpc.ServiceRegistrar, srv CharacterServiceServer) {
	s.RegisterService(&CharacterServiceDesc, srv)
}
