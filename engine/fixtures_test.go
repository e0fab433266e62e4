package engine

import (
	"document-composer/descriptor"
	"document-composer/registry"
)

// Blog-shaped fixtures exercised across the engine tests.

type Author struct {
	ID   int
	Name string
}

type Comment struct {
	ID      int
	Body    string
	Visible bool
}

type Tag struct {
	ID    int
	Label string
}

type Post struct {
	ID        int
	Title     string
	Body      string
	Published bool
	Author    *Author
	Comments  []*Comment
	Tags      []*Tag
}

// Attachment variants for polymorphic associations.

type Email struct {
	ID      int
	Subject string
}

type Call struct {
	ID     int
	Number string
}

type Note struct {
	ID         int
	Attachment any
}

func commentSerializer() *descriptor.Descriptor {
	return descriptor.New(descriptor.Config{
		Name:       "CommentSerializer",
		Attributes: []descriptor.AttributeConfig{{Name: "id"}, {Name: "body"}},
	})
}

func tagSerializer() *descriptor.Descriptor {
	return descriptor.New(descriptor.Config{
		Name:       "TagSerializer",
		Attributes: []descriptor.AttributeConfig{{Name: "id"}, {Name: "label"}},
	})
}

func emailSerializer() *descriptor.Descriptor {
	return descriptor.New(descriptor.Config{
		Name:       "EmailSerializer",
		Attributes: []descriptor.AttributeConfig{{Name: "id"}, {Name: "subject"}},
	})
}

func commentLikeSerializer() *descriptor.Descriptor {
	return descriptor.New(descriptor.Config{
		Name:       "ElementSerializer",
		Attributes: []descriptor.AttributeConfig{{Name: "id"}},
	})
}

func postWithIncludedComments() *descriptor.Descriptor {
	return descriptor.New(descriptor.Config{
		Name:       "PostSerializer",
		Attributes: []descriptor.AttributeConfig{{Name: "id"}, {Name: "title"}},
		Associations: []descriptor.AssociationConfig{
			{Name: "comments", Cardinality: descriptor.Many, Embed: descriptor.EmbedIDs, Include: descriptor.Include(true)},
		},
	})
}

// testRegistry builds an isolated registry with the blog serializers
// registered by type.
func testRegistry() *registry.Registry {
	reg := registry.New()
	reg.RegisterType(Comment{}, commentSerializer())
	reg.RegisterType(Tag{}, tagSerializer())
	reg.RegisterType(Email{}, emailSerializer())

	return reg
}

func testContext(reg *registry.Registry, options map[string]any) *Context {
	return NewContextWith(reg, nil, options)
}

func samplePost() *Post {
	return &Post{
		ID:        1,
		Title:     "Declarative serialization",
		Body:      "All of it.",
		Published: true,
		Author:    &Author{ID: 7, Name: "Ada"},
		Comments: []*Comment{
			{ID: 1, Body: "first", Visible: true},
			{ID: 2, Body: "second", Visible: false},
		},
		Tags: []*Tag{
			{ID: 10, Label: "go"},
			{ID: 11, Label: "json"},
		},
	}
}
