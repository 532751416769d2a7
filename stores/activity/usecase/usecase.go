package usecase

import (
	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain/activity"
)

type impl struct {
	repo activity.Repo
}

func New(repo activity.Repo) activity.Usecase {
	return &impl{
		repo: repo,
	}
}

func (im *impl) FindAll(c bCtx.Ctx, opts ...activity.FindOptions) ([]*activity.Activity, error) {
	return im.repo.FindAll(c, opts...)
}
