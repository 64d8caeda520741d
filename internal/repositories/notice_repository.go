package repositories

import (
	"context"

	"agency-console/internal/adapters"
	"agency-console/internal/apiclient"
	"agency-console/internal/models"
)

type NoticeRepository struct {
	API *apiclient.Client
}

func NewNoticeRepository(api *apiclient.Client) *NoticeRepository {
	return &NoticeRepository{API: api}
}

// List returns the notices visible to the signed-in user; the API filters by audience.
func (r *NoticeRepository) List(ctx context.Context) ([]models.Notice, error) {
	data, err := r.API.Get(ctx, join(pathNotice, "get"))
	if err != nil {
		return nil, err
	}
	return adapters.DecodeNotices(data)
}

func (r *NoticeRepository) Get(ctx context.Context, id string) (models.Notice, error) {
	data, err := r.API.Get(ctx, join(pathNotice, "get", id))
	if err != nil {
		return models.Notice{}, err
	}
	return adapters.DecodeNotice(data)
}

func (r *NoticeRepository) Create(ctx context.Context, req *models.NoticeRequest) error {
	_, err := r.API.Post(ctx, join(pathNotice, "create"), req)
	return err
}

func (r *NoticeRepository) Delete(ctx context.Context, id string) error {
	_, err := r.API.Delete(ctx, join(pathNotice, "delete", id))
	return err
}

type CommunicationRepository struct {
	API *apiclient.Client
}

func NewCommunicationRepository(api *apiclient.Client) *CommunicationRepository {
	return &CommunicationRepository{API: api}
}

func (r *CommunicationRepository) List(ctx context.Context) ([]models.Communication, error) {
	data, err := r.API.Get(ctx, pathCommunication)
	if err != nil {
		return nil, err
	}
	return adapters.DecodeCommunications(data)
}

func (r *CommunicationRepository) Get(ctx context.Context, id string) (models.Communication, error) {
	data, err := r.API.Get(ctx, join(pathCommunication, id))
	if err != nil {
		return models.Communication{}, err
	}
	return adapters.DecodeCommunication(data)
}

func (r *CommunicationRepository) Create(ctx context.Context, req *models.CommunicationRequest) error {
	_, err := r.API.Post(ctx, pathCommunication, req)
	return err
}

func (r *CommunicationRepository) Reply(ctx context.Context, id string, req *models.ReplyRequest) error {
	_, err := r.API.Put(ctx, join(pathCommunication, id, "reply"), req)
	return err
}

func (r *CommunicationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.API.Delete(ctx, join(pathCommunication, id))
	return err
}
