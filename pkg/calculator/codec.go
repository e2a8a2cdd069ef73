package calculator

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName имя кодека, согласуемое через content-subtype запроса
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec сериализует сообщения сервиса в JSON. Сообщения сервиса описаны
// обычными структурами без protobuf, стандартный proto-кодек их не принимает,
// поэтому клиент вызывает методы с grpc.CallContentSubtype(CodecName), а
// сервер находит кодек среди зарегистрированных по имени из запроса.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}
