package resource

import (
	"github.com/nvellon/hal"
)

type Resource interface {
	LinkSelf() string
	Resource() *hal.Resource
	GetMap() hal.Entry
}

type ResourceList struct {
	Resources []Resource
	SelfLink  string
}

func NewResourceList(list []Resource, selfLink string) *ResourceList {
	return &ResourceList{
		Resources: list,
		SelfLink:  selfLink,
	}
}

func (l ResourceList) Resource() *hal.Resource {
	rl := hal.NewResource(l, l.LinkSelf())

	rCollection := hal.ResourceCollection{}
	for _, apiResource := range l.Resources {
		rCollection = append(rCollection, apiResource.Resource())
	}
	rl.EmbedCollection("records", rCollection)

	return rl
}

func (l ResourceList) LinkSelf() string {
	return l.SelfLink
}

func (l ResourceList) GetMap() hal.Entry {
	return hal.Entry{
		"count": len(l.Resources),
	}
}
