package resource

import (
	"github.com/nvellon/hal"
)

type APIResource interface {
	LinkSelf() string
	Resource() *hal.Resource
	GetMap() hal.Entry
}

type ResourceList struct {
	Resources []APIResource
	SelfLink  string
	PrevLink  string
	NextLink  string
}

func NewResourceList(resources []APIResource, selfLink, prevLink, nextLink string) *ResourceList {
	return &ResourceList{
		Resources: resources,
		SelfLink:  selfLink,
		PrevLink:  prevLink,
		NextLink:  nextLink,
	}
}

func (l ResourceList) Resource() *hal.Resource {
	rl := hal.NewResource(struct{}{}, l.LinkSelf())
	for _, apiResource := range l.Resources {
		rl.Embed("records", apiResource.Resource())
	}
	if len(l.PrevLink) > 0 {
		rl.AddLink("prev", hal.NewLink(l.PrevLink))
	}
	if len(l.NextLink) > 0 {
		rl.AddLink("next", hal.NewLink(l.NextLink))
	}

	return rl
}

func (l ResourceList) LinkSelf() string {
	return l.SelfLink
}

func (l ResourceList) GetMap() hal.Entry {
	return hal.Entry{}
}
