// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package forms

import (
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/Heleguo/CrossplatForms/pkg/codec"
	"github.com/Heleguo/CrossplatForms/pkg/node"
)

// Image sources
const (
	ImageURL  = "url"
	ImagePath = "path"
)

// 🖼️ FormImage is a button or form icon, either a URL or a resource pack path
type FormImage struct {
	Type string
	Data string
}

var imageRecord = codec.NewRecord(codec.Record[FormImage]{
	Fields: []codec.Field[FormImage]{
		codec.Bind("type", func(i *FormImage) *string { return &i.Type }, codec.Required()),
		codec.Bind("data", func(i *FormImage) *string { return &i.Data }, codec.Required()),
	},
	Validate: func(i *FormImage) error {
		if i.Type != ImageURL && i.Type != ImagePath {
			return errors.Errorf("image type must be %q or %q, got %q", ImageURL, ImagePath, i.Type)
		}
		return nil
	},
})

// imageCodec accepts a bare string, guessing the source from its scheme
var imageCodec = codec.Func[FormImage]{
	DecodeFunc: func(r *codec.Registry, n node.Node) (FormImage, error) {
		if n.IsMap() || n.IsNull() {
			return imageRecord.Decode(r, n)
		}
		data, err := node.Scalar[string](n)
		if err != nil {
			return FormImage{}, err
		}
		if strings.HasPrefix(data, "http://") || strings.HasPrefix(data, "https://") {
			return FormImage{Type: ImageURL, Data: data}, nil
		}
		return FormImage{Type: ImagePath, Data: data}, nil
	},
	EncodeFunc: imageRecord.Encode,
}
