package log

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type FieldType uint8

const (
	AnyType FieldType = iota
	BoolType
	DurationType
	ErrorType
	Float32Type
	Float64Type
	IntType
	StringType
	Uint64Type
	Vec3Type
)

type Field struct {
	Key   string
	Type  FieldType
	Value any
}

func Any(key string, v any) Field                { return Field{Key: key, Type: AnyType, Value: v} }
func Bool(key string, v bool) Field              { return Field{Key: key, Type: BoolType, Value: v} }
func Duration(key string, v time.Duration) Field { return Field{Key: key, Type: DurationType, Value: v} }
func Float32(key string, v float32) Field        { return Field{Key: key, Type: Float32Type, Value: v} }
func Float64(key string, v float64) Field        { return Field{Key: key, Type: Float64Type, Value: v} }
func Int(key string, v int) Field                { return Field{Key: key, Type: IntType, Value: v} }
func String(key string, v string) Field          { return Field{Key: key, Type: StringType, Value: v} }
func Uint64(key string, v uint64) Field          { return Field{Key: key, Type: Uint64Type, Value: v} }
func Vec3(key string, v rl.Vector3) Field        { return Field{Key: key, Type: Vec3Type, Value: v} }
func Err(err error) Field                        { return Field{Key: "error", Type: ErrorType, Value: err} }
