package resource

import (
	"time"
)

type Article struct {
	ID        int
	Title     string     `jsonapi:"type=attr;flags=nosort"`
	Body      string     `jsonapi:"type=attr;name=content"`
	Secret    string     `jsonapi:"type=attr;flags=hidden"`
	CreatedAt time.Time
	Author    *Person    `jsonapi:"type=relation;inverse=articles;flags=eager"`
	Comments  []*Comment
	Tags      []*Tag     `jsonapi:"type=relation;through=ArticleTag;flags=noinclude"`
	internal  string
	Ignored   string `jsonapi:"-"`
}

type Person struct {
	ID       int
	Name     string
	Articles []*Article `jsonapi:"type=relation;inverse=author"`
	Friend   *Person
}

type Comment struct {
	ID      int
	Text    string
	Article *Article
}

type Tag struct {
	ID   int
	Name string
}

func (Tag) CollectionName() string {
	return "labels"
}
